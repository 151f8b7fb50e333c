package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/services"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/logger"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/response"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/ws"
)

// StatsFeed pushes fresh dashboard counts to connected WebSocket clients
// after every catalog mutation.
type StatsFeed struct {
	stats *services.StatsService
	hub   *ws.Hub
}

func NewStatsFeed(stats *services.StatsService, hub *ws.Hub) *StatsFeed {
	return &StatsFeed{stats: stats, hub: hub}
}

// Push recomputes the counts and broadcasts them. It runs in the background
// so mutation responses never wait on the dashboard feed.
func (f *StatsFeed) Push() {
	if f == nil || f.hub == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		stats, err := f.stats.Stats(ctx)
		if err != nil {
			logger.Warn("stats feed: compute failed", "error", err.Error())
			return
		}
		f.hub.BroadcastJSON(stats)
	}()
}

// StatsController serves the admin dashboard counts.
type StatsController struct {
	stats *services.StatsService
	hub   *ws.Hub
}

func NewStatsController(stats *services.StatsService, hub *ws.Hub) *StatsController {
	return &StatsController{stats: stats, hub: hub}
}

// Get returns the live entity counts.
func (c *StatsController) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := c.stats.Stats(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.Success(w, stats)
}

// Feed upgrades the connection to the live stats WebSocket.
func (c *StatsController) Feed(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, c.hub)
}
