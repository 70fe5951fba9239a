package cli

import (
	"github.com/spf13/cobra"

	"github.com/mithrel/pressgen/internal/server"
)

func newServeCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if listen != "" {
				app.Cfg.Set("http_addr", listen)
			}
			if err := checkConfig(app.Cfg); err != nil {
				return err
			}
			addr := app.Cfg.GetString("http_addr")
			if app.Cfg.GetString("webhook.url") == "" {
				app.Log.Warn("serve: webhook.url is empty; every release will use the fallback template")
			}
			srv := server.New(app.Cfg, app.Store, app.Generator, app.Formatter, app.Log.With("component", "http"))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (override config http_addr)")
	return cmd
}
