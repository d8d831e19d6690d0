// Package app assembles the service: config, logging, metrics, storage,
// events, scheduler and the HTTP engine.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hjemme/inventar/pkg/api"
	"github.com/hjemme/inventar/pkg/configs"
	"github.com/hjemme/inventar/pkg/internal/jobs"
	"github.com/hjemme/inventar/pkg/internal/model"
	"github.com/hjemme/inventar/pkg/internal/storage"
	"github.com/hjemme/inventar/pkg/log"
	"github.com/hjemme/inventar/pkg/metrics"
	"github.com/hjemme/inventar/pkg/middleware"
	"github.com/hjemme/inventar/pkg/queue"
	"github.com/hjemme/inventar/pkg/scheduler"
)

type App struct {
	Engine *gin.Engine
	config *configs.AppConfig
	queue  *queue.Queue
	sched  *scheduler.Scheduler
	cancel contextPkg.CancelFunc
}

// NewApp builds a fully wired application. Initialization failures are fatal;
// a half-started service is worse than none.
func NewApp(configPath string) *App {
	ctx, cancel := contextPkg.WithCancel(contextPkg.Background())

	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	log.Init()
	config := configs.GetConfig()

	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	if err := manager.GetDBClient().GetDB().AutoMigrate(model.All()...); err != nil {
		fmt.Printf("Error migrating schema: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()

	q := queue.New(config.Events, l)
	if err := q.StartLogConsumer(ctx); err != nil {
		l.Warn().Err(err).Msg("event log consumer not started")
	}

	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error initializing scheduler: %v\n", err)
		os.Exit(1)
	}

	if err := jobs.RegisterCronJobs(sched, manager); err != nil {
		l.Warn().Err(err).Msg("cron jobs not registered")
	}
	sched.Start()

	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.CORSMiddleware(),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.GinLoggerMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.StorageMiddleware(manager),
		middleware.QueueMiddleware(q),
	)

	metrics.RegisterMetricsRoute(config.Metrics, engine)
	api.RegisterGroups(engine)

	return &App{
		Engine: engine,
		config: config,
		queue:  q,
		sched:  sched,
		cancel: cancel,
	}
}

// Run serves HTTP until the listener fails.
func (a *App) Run() error {
	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}

// Shutdown stops the scheduler and the event queue.
func (a *App) Shutdown() {
	a.cancel()

	if err := a.sched.Shutdown(); err != nil {
		log.Logger().Warn().Err(err).Msg("scheduler shutdown failed")
	}

	if err := a.queue.Close(); err != nil {
		log.Logger().Warn().Err(err).Msg("queue close failed")
	}
}
