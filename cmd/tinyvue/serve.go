package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tinyvue/internal/config"
	"github.com/vango-dev/tinyvue/internal/errors"
	"github.com/vango-dev/tinyvue/internal/preview"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <component.yaml>",
		Short: "Start the live preview server",
		Long: `Start a live preview of a component.

Open the printed address in a browser. State changes made with
PUT /state/{path} re-render the component in every open tab.

Examples:
  tinyvue serve greeting.yaml
  tinyvue serve greeting.yaml --addr=:8080
  curl -X PUT localhost:3000/state/state.title -d '"y"'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args[0], addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", config.DefaultAddr, "Address to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, file, addr string) error {
	c, err := config.Load(file)
	if err != nil {
		return err
	}

	s, err := preview.New(preview.Options{
		Component: c,
		Addr:      addr,
		Logger:    slog.Default(),
	})
	if err != nil {
		return mountError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := newPrinter(cmd.OutOrStdout())
	p.success("Serving %s", c.Name)
	p.info("Local:   http://localhost%s", addr)
	p.info("State:   http://localhost%s/state", addr)
	p.info("Metrics: http://localhost%s/metrics", addr)

	if err := s.Start(ctx); err != nil {
		return errors.New("E007").Wrap(err)
	}
	return nil
}
