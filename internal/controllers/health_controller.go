package controllers

import (
	"flixmap/internal/models"
	"fmt"
	"net/http"
	"time"
)

type HealthController struct {
	mappings  *models.MappingStore
	skips     *models.SkipStore
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Mappings      int     `json:"mappings"`
	SkipEpisodes  int     `json:"skip_episodes"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Mappings:      hc.mappings.Len(),
		SkipEpisodes:  hc.skips.EpisodeCount(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(mappings *models.MappingStore, skips *models.SkipStore) *HealthController {
	return &HealthController{
		mappings:  mappings,
		skips:     skips,
		startTime: time.Now(),
	}
}
