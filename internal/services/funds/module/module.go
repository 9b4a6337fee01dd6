// Package module wires the funds vertical into the API using modkit
package module

import (
	"net/http"

	modkit "assistant/internal/modkit"
	"assistant/internal/modkit/httpkit"
	str "assistant/internal/platform/strings"

	"assistant/internal/services/funds/domain"
	fundshttp "assistant/internal/services/funds/http"
	"assistant/internal/services/funds/service"
)

// Ports declares the injected collaborators required by this module
type Ports struct {
	Source domain.SourcePort
}

// Exposed are the ports this module registers for other modules
type Exposed struct {
	Funds domain.FundsPort
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

	svc domain.FundsPort
}

// New constructs the funds module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("funds"),
		modkit.WithPrefix("/funds"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Source == nil {
		panic("funds module requires a Source port (TEFAS client)")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       service.New(injected.Source),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		fundshttp.Register(r, fundshttp.Deps{Funds: m.svc})
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
func (m *Module) Name() string { return str.MustString(m.name, "funds") }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements modkit.Module
func (m *Module) Ports() any { return Exposed{Funds: m.svc} }
