// Package module wires the scheduler vertical into the API using modkit
package module

import (
	"net/http"

	modkit "assistant/internal/modkit"
	"assistant/internal/modkit/httpkit"
	str "assistant/internal/platform/strings"

	digestdom "assistant/internal/services/digest/domain"
	dom "assistant/internal/services/scheduler/domain"
	schedhttp "assistant/internal/services/scheduler/http"
	"assistant/internal/services/scheduler/service"
	snapdom "assistant/internal/services/snapshot/domain"
	sugdom "assistant/internal/services/suggestions/domain"
)

// Inject declares the collaborators required by this module
type Inject struct {
	Snapshots snapdom.ReaderPort
	Daily     sugdom.DailyPort
	Digest    digestdom.DigestPort
}

// Ports holds the ports exposed by the scheduler module
type Ports struct {
	Sweep  dom.SweepPort
	Worker dom.WorkerPort
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

	svc *service.Svc
}

// New constructs the scheduler module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("scheduler"),
		modkit.WithPrefix("/cron"),
	}, opts...)...)

	var injected Inject
	if p, ok := b.Ports.(Inject); ok {
		injected = p
	}
	if injected.Snapshots == nil {
		panic("scheduler module requires the snapshot reader port")
	}
	if injected.Daily == nil {
		panic("scheduler module requires the daily suggestions port")
	}
	if injected.Digest == nil {
		panic("scheduler module requires the digest port")
	}

	cfg := FromConfig(deps.Cfg)
	svc := service.New(injected.Snapshots, injected.Daily, injected.Digest, service.Config{
		Interval: cfg.Interval,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		schedhttp.Register(r, schedhttp.Deps{Sweep: m.svc})
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
func (m *Module) Name() string { return str.MustString(m.name, "scheduler") }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements modkit.Module
func (m *Module) Ports() any { return Ports{Sweep: m.svc, Worker: m.svc} }
