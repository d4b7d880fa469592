package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/core/service"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	core       *Core
	dispatcher *service.SerialDispatcher
	httpServer httphandler.HTTPServer
}

// New builds the HTTP application. It panics on misconfiguration.
func New(context context.Context, config config.Config) *App {
	app := &App{ctx: context, cfg: config}

	InitLogger(app.cfg)
	app.initCore()
	app.initInboundAdapters()

	return app
}

// InitLogger sets the default JSON logger writing to stderr.
func InitLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initCore() {
	const op = "App.initCore"

	core, err := OpenCore(app.ctx, app.cfg)
	if err != nil {
		app.fallDown(op, err)
	}
	app.core = core
	app.dispatcher = service.NewSerialDispatcher(core.Session)
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.core.Catalog)
	httphandler.RegisterCart(mux, app.dispatcher)

	handler := httphandler.LogRequests(httphandler.AllowJSON(mux))
	httpServer := httphandler.NewHTTPServer(addr, handler, app.cfg.HTTPTimeout)
	app.httpServer = httpServer
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.core.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
