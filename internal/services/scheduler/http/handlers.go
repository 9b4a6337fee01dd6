// Package http mounts the cron endpoints
package http

import (
	stdhttp "net/http"

	"assistant/internal/modkit/httpkit"
	"assistant/internal/services/scheduler/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Sweep domain.SweepPort
}

type handlers struct {
	deps Deps
}

// Register mounts the cron routes on the module router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Post(r, "/daily-check", h.dailyCheck)
}

// swagger:route POST /cron/daily-check Cron cronDailyCheck
// @Summary Run the daily sweep once: suggestions and digests for every user
// @Tags Cron
// @Produce json
// @Success 200 {object} domain.SweepResult "ok"
// @Router /cron/daily-check [post]
func (h *handlers) dailyCheck(r *stdhttp.Request) (any, error) {
	return h.deps.Sweep.DailyCheck(r.Context())
}
