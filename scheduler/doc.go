// Package scheduler is the cron trigger collaborator: it invokes registered
// callbacks at matching instants and supports cancellation, which run mode
// uses to stop its 30-second poll.
package scheduler
