package main

import (
	"context"
	"flag"
	"os"

	"assistant/internal/modkit"
	"assistant/internal/modkit/module"
	"assistant/internal/platform/config"
	"assistant/internal/platform/logger"
	"assistant/internal/platform/store"

	"assistant/internal/adapters/llm/gemini"
	"assistant/internal/adapters/mail"

	digestmod "assistant/internal/services/digest/module"
	schedmod "assistant/internal/services/scheduler/module"
	snapmod "assistant/internal/services/snapshot/module"
	sugmod "assistant/internal/services/suggestions/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	root := config.New()
	dbCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         dbCfg.MustString("DBURL"),
			MaxConns:    int32(dbCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
			LogSQL:      dbCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	fInterval := flag.Duration("interval", 0, "sweep interval (default 5m; can also come from env)")
	flag.Parse()

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	// Export as env so the module can also read it via FromConfig
	if *fInterval > 0 {
		mustSetEnv("SCHEDULER_INTERVAL", fInterval.String())
	}

	gemCfg := root.Prefix("SERVICE_GEMINI_")
	llm, err := gemini.New(context.Background(), gemini.Options{
		APIKey: gemCfg.MustString("API_KEY"),
		Model:  gemCfg.MayString("MODEL", ""),
	})
	if err != nil {
		l.Panic().Err(err).Msg("gemini client init failed")
	}

	smtpCfg := root.Prefix("SERVICE_SMTP_")
	mailer := mail.New(mail.Options{
		Host:     smtpCfg.MayString("HOST", ""),
		Port:     smtpCfg.MayInt("PORT", 0),
		From:     smtpCfg.MayString("FROM", ""),
		Password: smtpCfg.MayString("PASSWORD", ""),
	})

	snapshot := snapmod.New(deps)
	snapPorts := module.MustPortsOf[snapmod.Ports](snapshot)

	suggestions := sugmod.New(deps, modkit.WithPorts(sugmod.Inject{
		Invoker:   llm,
		Snapshots: snapPorts.Reader,
	}))
	sugPorts := module.MustPortsOf[sugmod.Ports](suggestions)

	digest := digestmod.New(deps, modkit.WithPorts(digestmod.Ports{
		Mailer:    mailer,
		Snapshots: snapPorts.Reader,
	}))
	digestPorts := module.MustPortsOf[digestmod.Exposed](digest)

	mod := schedmod.New(deps, modkit.WithPorts(schedmod.Inject{
		Snapshots: snapPorts.Reader,
		Daily:     sugPorts.Daily,
		Digest:    digestPorts.Digest,
	}))
	module.Register(mod.Name(), mod.Ports())

	ports := module.MustPortsOf[schedmod.Ports](mod)

	if err := ports.Worker.Run(context.Background()); err != nil {
		l.Fatal().Err(err).Msg("scheduler worker failed")
	}
}
