// Package http mounts the digest email endpoints
package http

import (
	stdhttp "net/http"

	"assistant/internal/modkit/httpkit"
	"assistant/internal/services/digest/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Digest domain.DigestPort
}

type handlers struct {
	deps Deps
}

// Register mounts the digest routes on the module router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.PostJSON[domain.DailySummaryInput](r, "/daily-summary", h.dailySummary)
}

// swagger:route POST /email/daily-summary Email emailDailySummary
// @Summary Send the daily task summary to a list of recipients
// @Tags Email
// @Accept json
// @Produce json
// @Param payload body domain.DailySummaryInput true "user name, tasks and recipients"
// @Success 200 {object} domain.EmailResult "ok"
// @Router /email/daily-summary [post]
func (h *handlers) dailySummary(r *stdhttp.Request, in domain.DailySummaryInput) (any, error) {
	return h.deps.Digest.SendDailySummary(r.Context(), in)
}
