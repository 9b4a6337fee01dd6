// Package module wires snapshot backup and restore into the API
package module

import (
	"net/http"

	modkit "assistant/internal/modkit"
	"assistant/internal/modkit/httpkit"
	"assistant/internal/modkit/repokit"

	"assistant/internal/services/snapshot/domain"
	snaphttp "assistant/internal/services/snapshot/http"
	"assistant/internal/services/snapshot/repo"
	"assistant/internal/services/snapshot/service"
)

// Ports exposed by the snapshot module
type Ports struct {
	Reader domain.ReaderPort
	Writer domain.WriterPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	name  string
	mws   []func(http.Handler) http.Handler
	ports Ports

	register func(httpkit.Router)
}

// New constructs the snapshot module.
// Routes mount at the API root so the client paths stay /backup and /restore
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("snapshot"),
	}, opts...)...)

	svc := service.New(repokit.TxRunner(deps.PG), repo.NewPG())

	m := &Module{
		deps: deps,
		name: b.Name,
		mws:  b.Mw,
	}
	m.ports = Ports{Reader: svc, Writer: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		snaphttp.Register(r, snaphttp.Deps{Reader: svc, Writer: svc})
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements modkit.Module, grouped without a path prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Group(func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.name }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }
