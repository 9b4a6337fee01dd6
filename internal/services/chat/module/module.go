// Package module wires the chat vertical into the API using modkit
package module

import (
	"net/http"

	modkit "assistant/internal/modkit"
	"assistant/internal/modkit/httpkit"
	str "assistant/internal/platform/strings"

	"assistant/internal/services/chat/domain"
	chathttp "assistant/internal/services/chat/http"
	"assistant/internal/services/chat/service"
	sugdomain "assistant/internal/services/suggestions/domain"
)

// Ports declares the injected collaborators required by this module
type Ports struct {
	Invoker domain.InvokerPort

	// Sink and Daily come from the suggestions module, both optional
	Sink  domain.DirectiveSinkPort
	Daily sugdomain.DailyPort
}

// Exposed are the ports this module registers for other modules
type Exposed struct {
	Conversation domain.ConversationPort
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

	svc domain.ConversationPort
}

// New constructs the chat module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("chat"),
		modkit.WithPrefix("/ai"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Invoker == nil {
		panic("chat module requires an Invoker port (LLM adapter)")
	}

	svc := service.New(injected.Invoker, service.Config{
		MaxDataRequests: cfg.MaxDataRequests,
		Sink:            injected.Sink,
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
		chathttp.Register(r, chathttp.Deps{
			Conversation: m.svc,
			Daily:        injected.Daily,
		})
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
func (m *Module) Name() string { return str.MustString(m.name, "chat") }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements modkit.Module
func (m *Module) Ports() any { return Exposed{Conversation: m.svc} }
