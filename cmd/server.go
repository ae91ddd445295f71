package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"rvsalt/api"
	"rvsalt/config"
	"rvsalt/ingest"
	"rvsalt/logger"

	"github.com/spf13/cobra"
)

var (
	standaloneServerPort string
	noWatchFlag          bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the web UI and API server",
	Run: func(cmd *cobra.Command, args []string) {
		portToUse := standaloneServerPort
		if portToUse == "" {
			portToUse = config.AppConfig.Server.Port
		}

		apiRouter := api.NewRouter()

		staticFileDir := "./static"
		fileServer := http.FileServer(http.Dir(staticFileDir))

		mainMux := http.NewServeMux()
		mainMux.Handle("/api/", http.StripPrefix("/api", apiRouter))
		mainMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				// Safeguard; the /api/ handle above should have matched.
				http.StripPrefix("/api", apiRouter).ServeHTTP(w, r)
				return
			}
			fileServer.ServeHTTP(w, r)
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !noWatchFlag {
			delay := time.Duration(config.AppConfig.Analysis.SearchDebounceMs) * time.Millisecond
			watcher, err := ingest.NewWatcher(config.AppConfig.Data.Dir, delay)
			if err != nil {
				logger.Warn("Server Command: Data dir watcher disabled: %v", err)
			} else {
				go watcher.Run(ctx)
				logger.Info("Server Command: Watching data dir %s for export changes.", config.AppConfig.Data.Dir)
			}
		}

		srv := &http.Server{Addr: ":" + portToUse, Handler: mainMux}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Server Command: Shutdown error: %v", err)
			}
		}()

		logger.Info("Server Command: Listening on :%s...", portToUse)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Could not start server: %v", err)
		}
		logger.Info("Server Command: Server stopped.")
	},
}

func init() {
	serverCmd.Flags().StringVarP(&standaloneServerPort, "port", "p", "", "Port for the server to listen on (default from config)")
	serverCmd.Flags().BoolVar(&noWatchFlag, "no-watch", false, "Disable automatic reload on data dir changes")
	rootCmd.AddCommand(serverCmd)
}
