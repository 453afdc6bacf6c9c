package scheduler

import (
	"github.com/robfig/cron/v3"
)

// Cron wraps a robfig/cron runner behind the engine's trigger interface.
// Expressions use six fields with a leading seconds column.
type Cron struct {
	c *cron.Cron
}

func New() *Cron {
	return &Cron{c: cron.New(cron.WithSeconds())}
}

// Add registers fn to run at instants matching expr and returns a trigger id
// usable with Remove.
func (s *Cron) Add(expr string, fn func()) (int, error) {
	id, err := s.c.AddFunc(expr, fn)
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// Remove cancels a previously registered trigger.
func (s *Cron) Remove(id int) {
	s.c.Remove(cron.EntryID(id))
}

// Start begins firing triggers.
func (s *Cron) Start() {
	s.c.Start()
}

// Stop stops the runner and waits for in-flight callbacks to return.
func (s *Cron) Stop() {
	<-s.c.Stop().Done()
}
