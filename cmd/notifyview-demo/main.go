// Command notifyview-demo runs a self-contained notification inbox: it
// seeds a few notifications for the demo target, serves the inbox routes
// with the embedded templates, and streams new notifications over the live
// feed. Storage defaults to memory; set STORAGE=postgres (with PG_CONN_URL)
// to run against a real database.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/notifyview/modules/inbox"
	"github.com/dmitrymomot/notifyview/pkg/config"
	"github.com/dmitrymomot/notifyview/pkg/httpserver"
	"github.com/dmitrymomot/notifyview/pkg/logger"
	"github.com/dmitrymomot/notifyview/pkg/notifications"
	"github.com/dmitrymomot/notifyview/pkg/pg"
	"github.com/dmitrymomot/notifyview/pkg/view"
)

type appConfig struct {
	Storage string `env:"STORAGE" envDefault:"memory"`
	Layout  string `env:"INBOX_LAYOUT" envDefault:"notifications"`
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(context.Background(), log); err != nil {
		log.Error("Demo server failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var appCfg appConfig
	if err := config.Load(&appCfg); err != nil {
		return err
	}
	var srvCfg httpserver.Config
	if err := config.Load(&srvCfg); err != nil {
		return err
	}

	storage, ready, err := newStorage(ctx, appCfg, log)
	if err != nil {
		return err
	}

	feed := notifications.NewFeedDeliverer(64, notifications.WithFeedLogger(log))
	defer feed.Close()

	manager := notifications.NewManager(storage, feed, notifications.WithManagerLogger(log))
	renderer := view.New(
		view.NewHTMLEngine(inbox.Templates()),
		view.WithSource(manager),
		view.WithLogger(log),
	)

	if appCfg.Storage == "memory" {
		seed(ctx, manager, log)
	}

	r := chi.NewRouter()
	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, ready))
	r.Mount("/", inbox.Router(inbox.RouterOptions{
		Manager:  manager,
		Renderer: renderer,
		Feed:     feed,
		Layout:   appCfg.Layout,
		Logger:   log,
	}))

	srv := httpserver.New(srvCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

func newStorage(ctx context.Context, cfg appConfig, log *slog.Logger) (notifications.Storage, func(context.Context) error, error) {
	if cfg.Storage != "postgres" {
		noop := func(context.Context) error { return nil }
		return notifications.NewMemoryStorage(), noop, nil
	}

	var pgCfg pg.Config
	if err := config.Load(&pgCfg); err != nil {
		return nil, nil, err
	}
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return nil, nil, err
	}
	return notifications.NewPostgresStorage(pool), pool.Ping, nil
}

func seed(ctx context.Context, m *notifications.Manager, log *slog.Logger) {
	target := notifications.TargetRef{Kind: "user", ID: "demo"}
	batch := []notifications.Notification{
		{
			Target:  target,
			Type:    notifications.TypeInfo,
			Title:   "Welcome to the demo inbox",
			Message: "Browse /users/demo/notifications to see this page.",
		},
		{
			Target:   target,
			Type:     notifications.TypeWarning,
			Priority: notifications.PriorityHigh,
			Title:    "Storage is in-memory",
			Message:  "Notifications vanish on restart. Set STORAGE=postgres to persist them.",
			Actions: []notifications.Action{
				{Label: "Mark all read", URL: "/users/demo/notifications/open_all", Style: "primary"},
			},
		},
	}
	if err := m.SendBatch(ctx, batch); err != nil {
		log.Warn("Failed to seed demo notifications", logger.Error(err))
	}
}
