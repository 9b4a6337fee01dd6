// Package http mounts the fund lookup endpoints
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"assistant/internal/modkit/httpkit"
	"assistant/internal/services/funds/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Funds domain.FundsPort
}

type handlers struct {
	deps Deps
}

// Register mounts the fund routes on the module router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/price/{fund_code}", h.price)
	httpkit.Get(r, "/history/{fund_code}", h.history)
	httpkit.Get(r, "/search", h.search)
}

// swagger:route GET /funds/price/{fund_code} Funds fundPrice
// @Summary Latest or dated price for one fund
// @Tags Funds
// @Produce json
// @Param fund_code path string true "TEFAS fund code"
// @Param date query string false "ISO date (YYYY-MM-DD)"
// @Success 200 {object} tefas.FundPrice "ok"
// @Router /funds/price/{fund_code} [get]
func (h *handlers) price(r *stdhttp.Request) (any, error) {
	return h.deps.Funds.Price(r.Context(), chi.URLParam(r, "fund_code"), r.URL.Query().Get("date"))
}

// swagger:route GET /funds/history/{fund_code} Funds fundHistory
// @Summary Daily price history for one fund
// @Tags Funds
// @Produce json
// @Param fund_code path string true "TEFAS fund code"
// @Param days query int false "window size, defaults to 30"
// @Success 200 {object} domain.HistoryResult "ok"
// @Router /funds/history/{fund_code} [get]
func (h *handlers) history(r *stdhttp.Request) (any, error) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	return h.deps.Funds.History(r.Context(), chi.URLParam(r, "fund_code"), days)
}

// swagger:route GET /funds/search Funds fundSearch
// @Summary Search funds by code or name
// @Tags Funds
// @Produce json
// @Param query query string false "code or name fragment"
// @Success 200 {object} domain.SearchResult "ok"
// @Router /funds/search [get]
func (h *handlers) search(r *stdhttp.Request) (any, error) {
	return h.deps.Funds.Search(r.Context(), r.URL.Query().Get("query")), nil
}
