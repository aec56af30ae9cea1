package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blogdex/blogdex/pkg/api"
	"github.com/blogdex/blogdex/pkg/config"
	"github.com/blogdex/blogdex/pkg/log"
	"github.com/blogdex/blogdex/pkg/search"
	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"
)

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the read-only search and report API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "Listen address (overrides config listen_addr)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, c, c.String("listen"))
		},
	}
}

func serve(ctx context.Context, c *cli.Command, listenOverride string) error {
	logger := log.ForComponent("serve")

	cfg, store, err := loadConfigAndStore(c)
	if err != nil {
		return err
	}
	defer closeStore(store)

	listenAddr := cfg.ListenAddr
	if listenOverride != "" {
		listenAddr = listenOverride
	}

	service := search.NewService(store)
	server := api.NewServer(service, store, cfg.DefaultLimit)

	mux := http.NewServeMux()
	server.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           api.CorsMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Watch the config file so default page size and debug logging can be
	// changed without a restart.
	configPath := c.String("config")
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warnf("failed to create config file watcher: %v", err)
	} else {
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Warnf("failed to close config watcher: %v", err)
			}
		}()
		if err := watcher.Add(configPath); err != nil {
			logger.Warnf("failed to watch config file %s: %v", configPath, err)
		} else {
			go watchConfig(ctx, watcher, configPath, server, logger)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", listenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving HTTP: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	return nil
}

// watchConfig reloads the configuration when the file changes. Editors
// often replace files atomically, so rename/remove events re-add the path
// to the watcher.
func watchConfig(ctx context.Context, watcher *fsnotify.Watcher, configPath string, server *api.Server, logger *log.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					// Small delay to let the replacement file appear.
					time.Sleep(200 * time.Millisecond)
					if _, err := os.Stat(configPath); os.IsNotExist(err) {
						logger.Warnf("config file %s removed, keeping previous configuration", configPath)
						continue
					}
					if err := watcher.Add(configPath); err != nil {
						logger.Warnf("failed to re-watch config file: %v", err)
					}
				}

				newCfg, err := config.LoadConfig(configPath)
				if err != nil {
					logger.Errorf("failed to reload config: %v", err)
					continue
				}

				log.SetGlobalDebug(newCfg.Debug)
				server.SetDefaultTake(newCfg.DefaultLimit)
				logger.Infof("configuration reloaded (default_limit=%d debug=%v)", newCfg.DefaultLimit, newCfg.Debug)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("config watcher error: %v", err)
		}
	}
}
