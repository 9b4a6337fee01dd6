// Package api provides the HTTP API for the application
package api

import (
	"context"

	"assistant/internal/platform/config"
	"assistant/internal/platform/logger"
	phttp "assistant/internal/platform/net/http"
	"assistant/internal/platform/store"

	"assistant/internal/modkit"
	"assistant/internal/modkit/httpkit"
	"assistant/internal/modkit/module"
	"assistant/internal/modkit/repokit"
	"assistant/internal/modkit/swaggerkit"

	"assistant/internal/adapters/llm/gemini"
	"assistant/internal/adapters/mail"
	"assistant/internal/adapters/market/stocks"
	"assistant/internal/adapters/market/tefas"

	metamod "assistant/internal/services/api/meta/module"
	chatmod "assistant/internal/services/chat/module"
	digestmod "assistant/internal/services/digest/module"
	fundsmod "assistant/internal/services/funds/module"
	portfoliomod "assistant/internal/services/portfolio/module"
	schedmod "assistant/internal/services/scheduler/module"
	snapmod "assistant/internal/services/snapshot/module"
	stocksmod "assistant/internal/services/stocks/module"
	sugmod "assistant/internal/services/suggestions/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// every API transaction gets a statement timeout
	txTimeout := opt.Config.Prefix("SERVICE_PGSQL_").MayString("TX_STATEMENT_TIMEOUT", "5s")
	pg := repokit.WithBeginHooks(opt.Store.PG, func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, "SELECT set_config('statement_timeout', $1, true)", txTimeout)
		return err
	})

	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  pg,
	}

	// Adapters are process-wide singletons, each module borrows a port view
	gemCfg := opt.Config.Prefix("SERVICE_GEMINI_")
	llm, err := gemini.New(context.Background(), gemini.Options{
		APIKey: gemCfg.MustString("API_KEY"),
		Model:  gemCfg.MayString("MODEL", ""),
	})
	if err != nil {
		panic(err)
	}

	funds := tefas.NewClient(tefas.Options{})
	quotes := stocks.NewClient(stocks.Options{})

	smtpCfg := opt.Config.Prefix("SERVICE_SMTP_")
	mailer := mail.New(mail.Options{
		Host:     smtpCfg.MayString("HOST", ""),
		Port:     smtpCfg.MayInt("PORT", 0),
		From:     smtpCfg.MayString("FROM", ""),
		Password: smtpCfg.MayString("PASSWORD", ""),
	})

	// Snapshot first, its Reader port feeds suggestions, digest and scheduler
	snapshot := snapmod.New(deps)
	snapPorts := module.MustPortsOf[snapmod.Ports](snapshot)

	suggestions := sugmod.New(deps, modkit.WithPorts(sugmod.Inject{
		Invoker:   llm,
		Snapshots: snapPorts.Reader,
	}))
	sugPorts := module.MustPortsOf[sugmod.Ports](suggestions)

	chat := chatmod.New(deps, modkit.WithPorts(chatmod.Ports{
		Invoker: llm,
		Sink:    sugPorts.Writer,
		Daily:   sugPorts.Daily,
	}))

	digest := digestmod.New(deps, modkit.WithPorts(digestmod.Ports{
		Mailer:    mailer,
		Snapshots: snapPorts.Reader,
	}))
	digestPorts := module.MustPortsOf[digestmod.Exposed](digest)

	scheduler := schedmod.New(deps, modkit.WithPorts(schedmod.Inject{
		Snapshots: snapPorts.Reader,
		Daily:     sugPorts.Daily,
		Digest:    digestPorts.Digest,
	}))

	// meta pings the raw store handle, so it skips the tx hook wrapper
	mods := []module.Module{
		metamod.New(modkit.Deps{Cfg: opt.Config, PG: opt.Store.PG}),
		snapshot,
		suggestions,
		chat,
		fundsmod.New(deps, modkit.WithPorts(fundsmod.Ports{Source: funds})),
		stocksmod.New(deps, modkit.WithPorts(stocksmod.Ports{Source: quotes})),
		portfoliomod.New(deps, modkit.WithPorts(portfoliomod.Ports{
			Funds:  funds,
			Stocks: quotes,
		})),
		digest,
		scheduler,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
