// Package module wires the digest vertical into the API using modkit
package module

import (
	"net/http"

	modkit "assistant/internal/modkit"
	"assistant/internal/modkit/httpkit"
	str "assistant/internal/platform/strings"

	"assistant/internal/services/digest/domain"
	digesthttp "assistant/internal/services/digest/http"
	"assistant/internal/services/digest/repo"
	"assistant/internal/services/digest/service"
	snapdomain "assistant/internal/services/snapshot/domain"
)

// Ports declares the injected collaborators required by this module
type Ports struct {
	Mailer    domain.MailerPort
	Snapshots snapdomain.ReaderPort
}

// Exposed are the ports this module registers for other modules
type Exposed struct {
	Digest domain.DigestPort
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

	svc domain.DigestPort
}

// New constructs the digest module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("digest"),
		modkit.WithPrefix("/email"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Mailer == nil {
		panic("digest module requires a Mailer port (SMTP adapter)")
	}
	if injected.Snapshots == nil {
		panic("digest module requires the snapshot reader port")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       service.New(deps.PG, repo.NewPG(), injected.Mailer, injected.Snapshots),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		digesthttp.Register(r, digesthttp.Deps{Digest: m.svc})
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
func (m *Module) Name() string { return str.MustString(m.name, "digest") }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements modkit.Module
func (m *Module) Ports() any { return Exposed{Digest: m.svc} }
