package tracker

import (
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codesolver12/weight-loss-tracker/internal/server"
	"github.com/codesolver12/weight-loss-tracker/internal/store"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API over HTTP until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = settings.ServeAddr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return withDB(func(sqldb *sql.DB) error {
			srv := server.New(server.Options{
				Store:         store.New(sqldb, logger),
				Logger:        logger,
				PhotoDir:      settings.PhotoDir,
				RollingWindow: settings.RollingWindow,
				Now:           now,
			})
			return srv.Run(ctx, addr)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config serve.addr)")
}

