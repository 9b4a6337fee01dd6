// Package http mounts the stock lookup endpoints
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"assistant/internal/modkit/httpkit"
	"assistant/internal/services/stocks/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Stocks domain.StocksPort
}

type handlers struct {
	deps Deps
}

// Register mounts the stock routes on the module router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/price/{symbol}", h.price)
	httpkit.Get(r, "/history/{symbol}", h.history)
	httpkit.Get(r, "/search", h.search)
}

// swagger:route GET /stocks/price/{symbol} Stocks stockPrice
// @Summary Latest or dated quote for one symbol
// @Tags Stocks
// @Produce json
// @Param symbol path string true "ticker symbol, .IS suffix for BIST"
// @Param date query string false "ISO date (YYYY-MM-DD)"
// @Success 200 {object} stocks.Quote "ok"
// @Router /stocks/price/{symbol} [get]
func (h *handlers) price(r *stdhttp.Request) (any, error) {
	return h.deps.Stocks.Price(r.Context(), chi.URLParam(r, "symbol"), r.URL.Query().Get("date"))
}

// swagger:route GET /stocks/history/{symbol} Stocks stockHistory
// @Summary Daily close history for one symbol
// @Tags Stocks
// @Produce json
// @Param symbol path string true "ticker symbol"
// @Param days query int false "window size, defaults to 30"
// @Success 200 {object} domain.HistoryResult "ok"
// @Router /stocks/history/{symbol} [get]
func (h *handlers) history(r *stdhttp.Request) (any, error) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	return h.deps.Stocks.History(r.Context(), chi.URLParam(r, "symbol"), days)
}

// swagger:route GET /stocks/search Stocks stockSearch
// @Summary Search the common-stock list
// @Tags Stocks
// @Produce json
// @Param query query string false "symbol or name fragment"
// @Success 200 {object} domain.SearchResult "ok"
// @Router /stocks/search [get]
func (h *handlers) search(r *stdhttp.Request) (any, error) {
	return h.deps.Stocks.Search(r.Context(), r.URL.Query().Get("query")), nil
}
