// Package metrics exposes prometheus instrumentation for the bot: pipeline
// outcomes, command counts and run-mode state, registered on a private
// registry and served from the ops HTTP server.
package metrics
