// Package bootstrap wires configuration, logging, storage and the HTTP
// transport into a running verification service.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"pralay-server-go/internal/domain/eventbus"
	"pralay-server-go/internal/domain/report"
	"pralay-server-go/internal/domain/verification"
	verifycache "pralay-server-go/internal/domain/verification/cache"
	domainvideo "pralay-server-go/internal/domain/video"
	platformconfig "pralay-server-go/internal/platform/config"
	platformerrors "pralay-server-go/internal/platform/errors"
	platformlogging "pralay-server-go/internal/platform/logging"
	platformobservability "pralay-server-go/internal/platform/observability"
	platformstorage "pralay-server-go/internal/platform/storage"
	httptransport "pralay-server-go/internal/transport/http"
	httpverify "pralay-server-go/internal/transport/http/verify"
	httpwebapi "pralay-server-go/internal/transport/http/webapi"
	"pralay-server-go/internal/utils"
)

type stepFn func(context.Context, *appState) error

type initStep struct {
	ID        string
	Title     string
	DependsOn []string
	Kind      platformerrors.Kind
	Execute   stepFn
}

type appState struct {
	config                *platformconfig.Config
	configPath            string
	logProvider           *platformlogging.Logger
	logger                *utils.Logger
	slogger               *slog.Logger
	observabilityShutdown platformobservability.ShutdownFunc
	cacheStore            verifycache.Store
	extractor             domainvideo.Extractor
	reportRepo            report.Repository
	imageService          *verification.ImageService
	videoService          *verification.VideoService
}

// Run starts the whole service lifecycle: configuration, dependency
// initialization, HTTP serving and graceful shutdown.
func Run(ctx context.Context) error {
	state := &appState{}

	steps := InitGraph()
	if err := executeInitSteps(ctx, steps, state); err != nil {
		return err
	}

	config := state.config
	logger := state.logger
	if config == nil || logger == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"bootstrap state validation",
			"config/logger not initialised",
		)
	}
	if state.imageService == nil || state.videoService == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"bootstrap state validation",
			"verification services not initialised",
		)
	}

	logBootstrapGraph(logger, steps)

	if shutdown := state.observabilityShutdown; shutdown != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.WarnTag("BOOT", "observability shutdown failed: %v", err)
			}
		}()
	}

	defer func() {
		if state.cacheStore != nil {
			closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer closeCancel()
			if err := state.cacheStore.Close(closeCtx); err != nil {
				logger.WarnTag("CACHE", "verdict cache close failed: %v", err)
			}
		}
		eventbus.Shutdown()
	}()

	rootCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	signalCtx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(rootCtx)

	if _, err := startHTTPServer(state, group, groupCtx); err != nil {
		cancel()
		return fmt.Errorf("failed to start HTTP service: %w", err)
	}

	if err := waitForShutdown(signalCtx, cancel, logger, group); err != nil {
		return err
	}

	logger.InfoTag("BOOT", "service stopped cleanly")
	logger.Close()
	return nil
}

func logBootstrapGraph(logger *utils.Logger, steps []initStep) {
	if logger == nil {
		return
	}
	logger.InfoTag("BOOT", "initialization graph")
	for _, step := range steps {
		if len(step.DependsOn) > 0 {
			logger.InfoTag("BOOT", "%s (after %s)", step.ID, strings.Join(step.DependsOn, ", "))
		} else {
			logger.InfoTag("BOOT", "%s", step.ID)
		}
	}
}

func executeInitSteps(ctx context.Context, steps []initStep, state *appState) error {
	if state == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"execute init steps",
			"nil bootstrap state",
		)
	}

	completed := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		for _, dep := range step.DependsOn {
			if _, ok := completed[dep]; !ok {
				return platformerrors.New(
					platformerrors.KindBootstrap,
					step.ID,
					fmt.Sprintf("dependency %s not satisfied", dep),
				)
			}
		}
		if step.Execute == nil {
			return platformerrors.New(
				platformerrors.KindBootstrap,
				step.ID,
				"missing execute function",
			)
		}
		if err := step.Execute(ctx, state); err != nil {
			var typed *platformerrors.Error
			if errors.As(err, &typed) {
				return err
			}

			kind := step.Kind
			if kind == "" {
				kind = platformerrors.KindBootstrap
			}
			return platformerrors.Wrap(kind, step.ID, "bootstrap step failed", err)
		}
		completed[step.ID] = struct{}{}
	}
	return nil
}

// InitGraph lists the initialization steps in dependency order.
func InitGraph() []initStep {
	return []initStep{
		{
			ID:      "config:load-runtime",
			Title:   "Load runtime configuration",
			Kind:    platformerrors.KindConfig,
			Execute: loadConfigStep,
		},
		{
			ID:        "logging:init-provider",
			Title:     "Initialise logging provider",
			DependsOn: []string{"config:load-runtime"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initLoggingStep,
		},
		{
			ID:        "observability:setup-hooks",
			Title:     "Setup observability hooks",
			DependsOn: []string{"logging:init-provider"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   setupObservabilityStep,
		},
		{
			ID:        "storage:init-database",
			Title:     "Initialise report database",
			DependsOn: []string{"config:load-runtime", "logging:init-provider"},
			Kind:      platformerrors.KindStorage,
			Execute:   initDatabaseStep,
		},
		{
			ID:        "report:init-archive",
			Title:     "Initialise report archive",
			DependsOn: []string{"storage:init-database"},
			Kind:      platformerrors.KindStorage,
			Execute:   initReportArchiveStep,
		},
		{
			ID:        "cache:init-store",
			Title:     "Initialise verdict cache",
			DependsOn: []string{"config:load-runtime", "logging:init-provider"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initCacheStep,
		},
		{
			ID:        "video:init-extractor",
			Title:     "Initialise frame extractor",
			DependsOn: []string{"config:load-runtime", "logging:init-provider"},
			Kind:      platformerrors.KindMedia,
			Execute:   initExtractorStep,
		},
		{
			ID:        "verify:init-services",
			Title:     "Initialise verification services",
			DependsOn: []string{"cache:init-store", "video:init-extractor"},
			Kind:      platformerrors.KindVerify,
			Execute:   initVerificationStep,
		},
	}
}

func loadConfigStep(_ context.Context, state *appState) error {
	result, err := platformconfig.NewLoader().WithDotEnv(true).Load()
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindConfig, "config:load-runtime", "failed to load configuration", err)
	}

	state.config = result.Config
	state.configPath = result.Path
	return nil
}

func initLoggingStep(_ context.Context, state *appState) error {
	if state == nil || state.config == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"logging:init-provider",
			"config not loaded",
		)
	}

	logProvider, err := platformlogging.New(state.config.Log)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "logging:init-provider", "failed to initialize logging provider", err)
	}

	state.logProvider = logProvider
	state.logger = logProvider.Core()
	state.slogger = logProvider.Slog()
	utils.DefaultLogger = state.logger

	state.logger.InfoTag(
		"BOOT",
		"logging ready [%s] config=%s",
		state.config.Log.Level,
		state.configPath,
	)

	eventbus.SetupEventHandlers(state.logger)

	return nil
}

func setupObservabilityStep(ctx context.Context, state *appState) error {
	if state == nil || state.logger == nil || state.config == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"observability:setup-hooks",
			"config/logger not initialised",
		)
	}

	slogger := state.slogger
	if slogger == nil {
		slogger = state.logger.Slog()
	}

	cfg := platformobservability.Config{
		Enabled: strings.EqualFold(state.config.Log.Level, "debug"),
	}

	shutdown, err := platformobservability.Setup(ctx, cfg, slogger)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "observability:setup-hooks", "failed to setup observability hooks", err)
	}
	state.observabilityShutdown = shutdown

	return nil
}

func initDatabaseStep(_ context.Context, state *appState) error {
	if err := platformstorage.InitDatabase(state.config.Storage); err != nil {
		return platformerrors.Wrap(platformerrors.KindStorage, "storage:init-database", "failed to initialize database", err)
	}
	return nil
}

func initReportArchiveStep(_ context.Context, state *appState) error {
	state.reportRepo = report.NewRepository(platformstorage.GetDB())

	persister := report.NewPersister(state.reportRepo, state.logger)
	if err := persister.Start(); err != nil {
		return platformerrors.Wrap(platformerrors.KindStorage, "report:init-archive", "failed to subscribe report persister", err)
	}

	return nil
}

func initCacheStep(_ context.Context, state *appState) error {
	cacheCfg := verifycache.Config{
		Driver:   state.config.Cache.Driver,
		Capacity: state.config.Cache.Capacity,
		TTL:      state.config.Cache.TTL,
	}
	if state.config.Cache.Redis.Addr != "" {
		cacheCfg.Redis = &verifycache.RedisConfig{
			Addr:     state.config.Cache.Redis.Addr,
			Username: state.config.Cache.Redis.Username,
			Password: state.config.Cache.Redis.Password,
			DB:       state.config.Cache.Redis.DB,
			Prefix:   state.config.Cache.Redis.Prefix,
		}
	}

	store, err := verifycache.New(cacheCfg)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "cache:init-store", "failed to create verdict cache", err)
	}
	state.cacheStore = store

	state.logger.InfoTag("CACHE", "verdict cache ready, driver=%s capacity=%d",
		state.config.Cache.Driver, state.config.Cache.Capacity)
	return nil
}

func initExtractorStep(_ context.Context, state *appState) error {
	extractor := domainvideo.NewFFmpegExtractor(state.config.FFmpeg, state.logger)
	if !extractor.IsAvailable() {
		state.logger.WarnTag("VIDEO", "ffmpeg/ffprobe not found, video analysis degrades to keyword fallback")
	}
	state.extractor = extractor
	return nil
}

func initVerificationStep(_ context.Context, state *appState) error {
	imgCfg := state.config.Verify.Image
	state.imageService = verification.NewImageService(&imgCfg, state.logger)
	state.videoService = verification.NewVideoService(
		state.config.Verify.Video,
		state.extractor,
		state.cacheStore,
		state.logger,
	)
	return nil
}

func startHTTPServer(state *appState, g *errgroup.Group, groupCtx context.Context) (*http.Server, error) {
	config := state.config
	logger := state.logger

	httpRouter, err := httptransport.Build(httptransport.Options{
		Config:     config,
		Logger:     logger,
		StaticRoot: config.Web.StaticDir,
	})
	if err != nil {
		return nil, err
	}
	router := httpRouter.Engine
	apiGroup := httpRouter.API

	staticRoot := config.Web.StaticDir
	if staticRoot == "" {
		staticRoot = "./web"
	}
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			httptransport.RespondError(c, http.StatusNotFound, "api route not found", gin.H{})
			return
		}

		c.File(staticRoot + "/index.html")
	})

	verifyService, err := httpverify.NewService(config, logger, state.imageService, state.videoService)
	if err != nil {
		logger.ErrorTag("VERIFY", "verification transport init failed: %v", err)
		return nil, platformerrors.Wrap(platformerrors.KindTransport, "verify:new-service", "failed to create verify service", err)
	}

	webapiService, err := httpwebapi.NewService(config, logger, state.reportRepo)
	if err != nil {
		logger.ErrorTag("HTTP", "operator API init failed: %v", err)
		return nil, platformerrors.Wrap(platformerrors.KindTransport, "webapi:new-service", "failed to create webapi service", err)
	}

	if err := verifyService.Register(groupCtx, apiGroup); err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindTransport, "verify:register-routes", "failed to register verify routes", err)
	}
	if err := webapiService.Register(groupCtx, apiGroup); err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindTransport, "webapi:register-routes", "failed to register webapi routes", err)
	}

	httpServer := &http.Server{
		Addr:    ":" + strconv.Itoa(config.Server.Port),
		Handler: router,
	}

	g.Go(func() error {
		logger.InfoTag("HTTP", "server listening on http://localhost:%d", config.Server.Port)
		logger.InfoTag("HTTP", "image verification: POST http://localhost:%d/api/verify-image", config.Server.Port)
		logger.InfoTag("HTTP", "video verification: POST http://localhost:%d/api/verify-video", config.Server.Port)

		go func() {
			<-groupCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.ErrorTag("HTTP", "HTTP server shutdown failed: %v", err)
			} else {
				logger.InfoTag("HTTP", "HTTP server stopped gracefully")
			}
		}()

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorTag("HTTP", "HTTP server failed: %v", err)
			return err
		}
		return nil
	})

	return httpServer, nil
}

func waitForShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	logger *utils.Logger,
	g *errgroup.Group,
) error {
	<-ctx.Done()
	logger.InfoTag("BOOT", "shutdown signal received (%v), cleaning up", context.Cause(ctx))

	cancel()

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.ErrorTag("BOOT", "error during shutdown: %v", err)
			return err
		}
		logger.InfoTag("BOOT", "all services stopped")
	case <-time.After(15 * time.Second):
		timeoutErr := errors.New("shutdown timed out")
		logger.ErrorTag("BOOT", "shutdown timed out, forcing exit")
		return timeoutErr
	}
	return nil
}

// loadConfigAndLogger runs only the config and logging steps. Test helper.
func loadConfigAndLogger() (*platformconfig.Config, *utils.Logger, error) {
	state := &appState{}

	steps := []initStep{
		{
			ID:      "config:load-runtime",
			Title:   "Load runtime configuration",
			Kind:    platformerrors.KindConfig,
			Execute: loadConfigStep,
		},
		{
			ID:        "logging:init-provider",
			Title:     "Initialise logging provider",
			DependsOn: []string{"config:load-runtime"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initLoggingStep,
		},
	}

	if err := executeInitSteps(context.Background(), steps, state); err != nil {
		return nil, nil, err
	}

	return state.config, state.logger, nil
}
