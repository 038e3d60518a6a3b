package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/openmat/internal/buildinfo"
	"github.com/dmitrijs2005/openmat/internal/client/cli"
	"github.com/dmitrijs2005/openmat/internal/client/client"
	"github.com/dmitrijs2005/openmat/internal/client/config"
	"github.com/dmitrijs2005/openmat/internal/client/httpclient"
	"github.com/dmitrijs2005/openmat/internal/client/session"
	"github.com/dmitrijs2005/openmat/internal/client/tokenstore"
	"github.com/dmitrijs2005/openmat/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "openmat cli failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	tokens, closeStore, err := openTokenStore(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	hc := httpclient.New(cfg.APIBaseURL,
		httpclient.WithTimeout(cfg.RequestTimeout),
		httpclient.WithLogger(logger.With("component", "http")),
		httpclient.WithMetrics(reg),
	)
	api := client.NewRESTClient(hc)

	s := session.New(api, hc, tokens, session.WithLogger(logger.With("component", "session")))
	defer s.Close()
	s.Init(ctx)

	app := cli.NewApp(cfg, s, cli.NewServices(api), logger)
	app.Run(ctx)

	logRequestStats(ctx, logger, reg)
	return nil
}

// openTokenStore keeps the token in SQLite, or in memory when no database
// path is configured.
func openTokenStore(ctx context.Context, path string) (tokenstore.Store, func(), error) {
	if path == "" {
		return tokenstore.NewMemoryStore(""), func() {}, nil
	}
	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return tokenstore.NewSQLiteStore(db), func() { _ = db.Close() }, nil
}

func logRequestStats(ctx context.Context, logger logging.Logger, reg prometheus.Gatherer) {
	families, err := reg.Gather()
	if err != nil {
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				args := []any{"metric", mf.GetName(), "value", c.GetValue()}
				for _, lp := range m.GetLabel() {
					args = append(args, lp.GetName(), lp.GetValue())
				}
				logger.Debug(ctx, "request stats", args...)
			}
		}
	}
}
