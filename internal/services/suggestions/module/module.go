// Package module wires the suggestions service, it exposes ports only
package module

import (
	"net/http"

	modkit "assistant/internal/modkit"
	"assistant/internal/modkit/httpkit"
	"assistant/internal/modkit/repokit"

	snapdomain "assistant/internal/services/snapshot/domain"
	"assistant/internal/services/suggestions/domain"
	"assistant/internal/services/suggestions/repo"
	"assistant/internal/services/suggestions/service"
)

// Inject declares the collaborators this module needs wired in
type Inject struct {
	Invoker   domain.InvokerPort
	Snapshots snapdomain.ReaderPort
}

// Ports exposed by the suggestions module
type Ports struct {
	Writer domain.WriterPort
	Reader domain.ReaderPort
	Daily  domain.DailyPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new suggestions module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("suggestions"),
	}, opts...)...)

	var injected Inject
	if p, ok := b.Ports.(Inject); ok {
		injected = p
	}
	if injected.Invoker == nil {
		panic("suggestions module requires an Invoker port (LLM adapter)")
	}
	if injected.Snapshots == nil {
		panic("suggestions module requires the snapshot Reader port")
	}

	svc := service.New(repokit.TxRunner(deps.PG), repo.NewPG(), injected.Invoker, injected.Snapshots)

	m := &Module{deps: deps}
	m.ports = Ports{Writer: svc, Reader: svc, Daily: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "suggestions" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
