package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	api "github.com/mind-engage/mindengage-papergen/internal/api/http"
	auth "github.com/mind-engage/mindengage-papergen/internal/auth/middleware"
	"github.com/mind-engage/mindengage-papergen/internal/config"
)

var serveSubjects string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg := config.Load(vp)
		a, err := newApp(ctx, cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if serveSubjects != "" {
			if err := a.importSubjects(ctx, serveSubjects); err != nil {
				return err
			}
		}

		handler := api.NewRouter(api.Deps{
			Auth: auth.NewAuthService(cfg.AuthHMACSecret),
			Credentials: auth.Credentials{
				User:     cfg.AdminUser,
				PassHash: cfg.AdminPassHash,
				DevLogin: cfg.Mode == config.ModeOffline,
			},
			Subjects:    a.subjects,
			Papers:      a.papers,
			Blobs:       a.blobs,
			DB:          a.db,
			CORSOrigins: cfg.CORSOrigins,
			Timeout:     5 * time.Minute, // generation runs in-request
			Log:         a.log,
		})

		srv := &http.Server{Addr: cfg.HTTPAddr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
		errCh := make(chan error, 1)
		go func() {
			a.log.Infow("listening", "addr", cfg.HTTPAddr, "mode", cfg.Mode, "db", cfg.DBDriver)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}
		a.log.Infow("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	},
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", "", "listen address (default :8080)")
	f.StringVar(&serveSubjects, "subjects", "", "JSON file of subjects to load before serving")
	_ = vp.BindPFlag("http_addr", f.Lookup("addr"))
}
