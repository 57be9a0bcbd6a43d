package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dmitrijs2005/medbook/internal/client/api"
	"github.com/dmitrijs2005/medbook/internal/client/auth"
	"github.com/dmitrijs2005/medbook/internal/client/cli"
	"github.com/dmitrijs2005/medbook/internal/client/config"
	"github.com/dmitrijs2005/medbook/internal/client/gateway"
	"github.com/dmitrijs2005/medbook/internal/client/routes"
	"github.com/dmitrijs2005/medbook/internal/client/session"
	"github.com/dmitrijs2005/medbook/internal/client/storage"
	"github.com/dmitrijs2005/medbook/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx := context.Background()

	if err := run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	logger := logging.NewConsole(os.Stderr, cfg.LogLevel)

	var backend session.Backend
	if cfg.Ephemeral {
		backend = session.NewMemoryBackend()
	} else {
		st, err := storage.Open(ctx, cfg.SessionDB)
		if err != nil {
			return fmt.Errorf("error initializing session storage: %w", err)
		}
		defer st.Close()
		backend = st
	}
	store := session.NewStore(backend)

	registry := prometheus.NewRegistry()
	gw := gateway.New(cfg.APIURL, store,
		gateway.WithTimeout(cfg.RequestTimeout),
		gateway.WithLogger(logger.With("component", "gateway")),
		gateway.WithRegisterer(registry),
	)
	svc := api.New(gw)

	machine := auth.NewMachine(svc.Accounts, store, logger.With("component", "auth"))

	table, err := routes.NewTable(routes.Default())
	if err != nil {
		return err
	}
	nav := routes.NewNavigator(table, machine.State)

	app := cli.NewApp(cli.Deps{
		API:                 svc,
		Auth:                machine,
		Nav:                 nav,
		Pinger:              gw,
		Tokens:              store,
		Log:                 logger.With("component", "cli"),
		In:                  os.Stdin,
		Out:                 os.Stdout,
		OnlineCheckInterval: cfg.OnlineCheckInterval,
	})
	gw.SetSessionExpiredHandler(app.SessionExpired)

	logger.Debug(ctx, "starting", "api_url", gw.BaseURL(), "ephemeral", cfg.Ephemeral)
	err = app.Run(ctx)

	logMetrics(ctx, logger, registry)
	return err
}

// logMetrics dumps the gateway counters at debug level on exit.
func logMetrics(ctx context.Context, logger logging.Logger, g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		logger.Warn(ctx, "gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			logger.Debug(ctx, "metric", "name", mf.GetName(), "labels", strings.Join(labels, ","), "value", m.GetCounter().GetValue())
		}
	}
}
