// Package listingservice wires configuration, upstream clients, the
// cache, the source router and the HTTP surface into a running service.
package listingservice

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/vitrine-media/vitrine/internal/api"
	"github.com/vitrine-media/vitrine/internal/archiveindex"
	"github.com/vitrine-media/vitrine/internal/cache"
	"github.com/vitrine-media/vitrine/internal/config"
	"github.com/vitrine-media/vitrine/internal/flatfiles"
	"github.com/vitrine-media/vitrine/internal/health"
	"github.com/vitrine-media/vitrine/internal/listing"
	"github.com/vitrine-media/vitrine/internal/logger"
	"github.com/vitrine-media/vitrine/internal/mediaserver"
	"github.com/vitrine-media/vitrine/internal/sources"
)

// Run starts the listing service HTTP server and blocks until shutdown
// or error.
func Run() error {
	log := logger.New("listing-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Bool("media_server", cfg.MediaServerEnabled).
		Bool("archive_index", cfg.ArchiveIndexEnabled).
		Bool("flat_files", cfg.FlatFilesEnabled).
		Msg("Listing service starting")

	ctx, stop := newServerContext()
	defer stop()

	deps := buildDependencies(cfg, log)

	// Health checkers run in the background; upstream failures surface
	// per request, so startup is not gated on them.
	startHealthCheckers(ctx, cfg, log, deps)

	go deps.registry.StartSweeper(ctx, time.Minute)

	router := api.NewRouter(api.Deps{
		Lister:          deps.service,
		Registry:        deps.registry,
		Media:           deps.mediaDirectory(),
		Files:           deps.fileArchive(),
		DefaultPageSize: cfg.DefaultPageSize,
	})

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// dependencies bundles the constructed collaborators. Clients for
// disabled sources stay nil; the router treats them as disabled.
type dependencies struct {
	media    *mediaserver.Client
	files    *flatfiles.Client
	index    *archiveindex.Client
	service  *listing.Service
	registry *listing.Registry
}

func (d *dependencies) mediaDirectory() api.InstanceDirectory {
	if d.media == nil {
		return nil
	}
	return d.media
}

func (d *dependencies) fileArchive() api.FileArchive {
	if d.files == nil {
		return nil
	}
	return d.files
}

func buildDependencies(cfg *config.Config, log zerolog.Logger) *dependencies {
	d := &dependencies{}

	if cfg.MediaServerEnabled {
		d.media = mediaserver.New(
			cfg.MediaServerInstances,
			cfg.MediaServerDefaultInstance,
			cfg.MediaServerToken,
			cfg.MediaServerUserID,
			cfg.UpstreamTimeout(),
			log,
		)
	}
	if cfg.FlatFilesEnabled {
		d.files = flatfiles.New(cfg.FlatFilesURL, cfg.UpstreamTimeout(), log)
	}
	if cfg.ArchiveIndexEnabled {
		d.index = archiveindex.New(cfg.ArchiveIndexURL, cfg.UpstreamTimeout(), log)
	}

	var media sources.MediaServerClient
	if d.media != nil {
		media = d.media
	}
	var files sources.FlatFilesClient
	if d.files != nil {
		files = d.files
	}
	var index sources.ArchiveIndexClient
	if d.index != nil {
		index = d.index
	}

	router := sources.NewRouter(media, files, index, sources.Flags{
		MediaServer:  cfg.MediaServerEnabled,
		ArchiveIndex: cfg.ArchiveIndexEnabled,
		FlatFiles:    cfg.FlatFilesEnabled,
	}, log)

	store := cache.New(cfg.CacheMaxEntries, cfg.CacheTTL())
	d.service = listing.NewService(router, store, log)
	d.registry = listing.NewRegistry(d.service, cfg.DefaultPageSize, cfg.SessionMaxAge(), log)
	return d
}

// startHealthCheckers starts one checker per enabled upstream and binds
// the aggregate to the health endpoint.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, d *dependencies) {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	var checkers []health.HealthChecker
	if d.media != nil {
		c := health.NewUpstreamChecker("media-server", d.media, log, probeTimeout)
		go c.Start(ctx, interval)
		checkers = append(checkers, c)
	}
	if d.index != nil {
		c := health.NewUpstreamChecker("archive-index", d.index, log, probeTimeout)
		go c.Start(ctx, interval)
		checkers = append(checkers, c)
	}
	if d.files != nil {
		c := health.NewUpstreamChecker("flat-files", d.files, log, probeTimeout)
		go c.Start(ctx, interval)
		checkers = append(checkers, c)
	}

	svcHealth := health.NewServiceHealthChecker(log, checkers...)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
