package onebotaway

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status                string `json:"status"`
	LastNotificationEpoch int64  `json:"last_notification_epoch"`
	RunActive             bool   `json:"run_active"`
	Schedules             int    `json:"schedules"`
}

func handleHealth(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := healthResponse{
			Status:                "ok",
			LastNotificationEpoch: engine.LastNotifiedEpoch(),
			RunActive:             engine.RunActive(),
			Schedules:             len(engine.Schedules()),
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
