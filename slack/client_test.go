package slack

import (
	"fmt"
	"testing"
)

type stubHandler struct{}

func (stubHandler) HandleHi() string { return "hi-reply" }
func (stubHandler) HandleBus(take int) string { return fmt.Sprintf("bus-reply-%d", take) }
func (stubHandler) HandleRun() string { return "run-reply" }
func (stubHandler) HandleSkip() string { return "skip-reply" }
func (stubHandler) HandleSchedules() string { return "schedule-reply" }

func TestCommandReply(t *testing.T) {
	tests := []struct {
		text  string
		reply string
		ok    bool
	}{
		{"hi", "hi-reply", true},
		{"  Hi  ", "hi-reply", true},
		{"bus", "bus-reply-0", true},
		{"bus 3", "bus-reply-3", true},
		{"BUS 3", "bus-reply-3", true},
		{"bus lots", "bus-reply-0", true},
		{"run", "run-reply", true},
		{"skip", "skip-reply", true},
		{"schedule", "schedule-reply", true},
		{"what time is it", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.text), func(t *testing.T) {
			reply, ok := commandReply(tt.text, stubHandler{})
			if ok != tt.ok || reply != tt.reply {
				t.Errorf("commandReply(%q) = %q, %v; want %q, %v", tt.text, reply, ok, tt.reply, tt.ok)
			}
		})
	}
}
