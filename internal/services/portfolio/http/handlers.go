// Package http mounts the portfolio endpoints
package http

import (
	stdhttp "net/http"

	"assistant/internal/modkit/httpkit"
	"assistant/internal/services/portfolio/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Portfolio domain.PortfolioPort
}

type handlers struct {
	deps Deps
}

// Register mounts the portfolio routes on the module router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.PostJSON[domain.CalculateInput](r, "/calculate", h.calculate)
	httpkit.Get(r, "/history", h.history)
}

// swagger:route POST /portfolio/calculate Portfolio portfolioCalculate
// @Summary Price every fund and stock position and record the daily snapshot
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param payload body domain.CalculateInput true "fund and stock positions"
// @Success 200 {object} domain.Summary "ok"
// @Router /portfolio/calculate [post]
func (h *handlers) calculate(r *stdhttp.Request, in domain.CalculateInput) (any, error) {
	return h.deps.Portfolio.Calculate(r.Context(), in)
}

// swagger:route GET /portfolio/history Portfolio portfolioHistory
// @Summary Stored daily portfolio values over a range
// @Tags Portfolio
// @Produce json
// @Param range query string false "day, week, month or year; defaults to month"
// @Param fund_code query string false "restrict to one fund, defaults to the aggregate"
// @Success 200 {object} domain.HistoryResponse "ok"
// @Router /portfolio/history [get]
func (h *handlers) history(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	return h.deps.Portfolio.History(r.Context(), q.Get("range"), q.Get("fund_code"))
}
