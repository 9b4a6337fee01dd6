// Package module wires the portfolio vertical into the API using modkit
package module

import (
	"net/http"

	modkit "assistant/internal/modkit"
	"assistant/internal/modkit/httpkit"
	str "assistant/internal/platform/strings"

	"assistant/internal/services/portfolio/domain"
	pfhttp "assistant/internal/services/portfolio/http"
	"assistant/internal/services/portfolio/repo"
	"assistant/internal/services/portfolio/service"
)

// Ports declares the injected collaborators required by this module
type Ports struct {
	Funds  domain.FundMarketPort
	Stocks domain.StockMarketPort
}

// Exposed are the ports this module registers for other modules
type Exposed struct {
	Portfolio domain.PortfolioPort
}

// Module implements modkit.Module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc domain.PortfolioPort
}

// New constructs the portfolio module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("portfolio"),
		modkit.WithPrefix("/portfolio"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Funds == nil {
		panic("portfolio module requires a Funds market port")
	}
	if injected.Stocks == nil {
		panic("portfolio module requires a Stocks market port")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       service.New(deps.PG, repo.NewPG(), injected.Funds, injected.Stocks),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		pfhttp.Register(r, pfhttp.Deps{Portfolio: m.svc})
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name implements modkit.Module
func (m *Module) Name() string { return str.MustString(m.name, "portfolio") }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements modkit.Module
func (m *Module) Ports() any { return Exposed{Portfolio: m.svc} }
