// Package slack is the chat delivery collaborator: RTM message events in,
// plain text replies and pushes out. Formatting conventions (emoji, code
// fences) are produced upstream; this package only moves strings.
package slack
