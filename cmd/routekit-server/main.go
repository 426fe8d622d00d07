package main

import (
	"context"
	"os"
	"time"

	"github.com/dmitrymomot/routekit"
	"github.com/dmitrymomot/routekit/pkg/config"
	"github.com/dmitrymomot/routekit/pkg/httpserver"
	"github.com/dmitrymomot/routekit/pkg/logger"
	"github.com/dmitrymomot/routekit/pkg/requestid"
	"github.com/dmitrymomot/routekit/pkg/scheduler"
)

type appConfig struct {
	Environment  string        `env:"ENVIRONMENT" envDefault:"development"`
	TaskSlots    int           `env:"TASK_SLOTS" envDefault:"10"`
	TaskDuration time.Duration `env:"TASK_DURATION" envDefault:"2s"`

	HTTP httpserver.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Environment, "routekit-server"),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	app := routekit.New(
		routekit.WithLogger(log),
		routekit.WithScheduler(scheduler.New(
			scheduler.WithCapacity(cfg.TaskSlots),
			scheduler.WithWorkDuration(cfg.TaskDuration),
			scheduler.WithLogger(log),
		)),
		routekit.WithServerOptions(cfg.HTTP.Options()...),
	)

	app.RegisterMiddleware("logging", true)

	app.RegisterRoute("/", "GET", "Index Page", "Index page")
	app.RegisterRoute("/api/hello", "GET", "Hello, World!", "Get a hello message")
	app.RegisterRoute("/api/other", "GET", "Other Endpoint", "Another static endpoint")

	if err := app.Run(context.Background()); err != nil {
		log.Error("server failed", logger.Error(err))
		os.Exit(1)
	}
}
