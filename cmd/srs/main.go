// Command srs demonstrates a controllable worker: it starts one, suspends it,
// resumes it and finally stops it, pausing between each control call.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/osmike/pausable/internal/config"
)

func newRootCmd() (*cobra.Command, error) {
	var (
		cfgFile string
		v       *viper.Viper
	)

	cmd := &cobra.Command{
		Use:   "srs",
		Short: "Suspend, resume and stop a background worker",
		Long: `srs starts a worker that executes a simulated work unit in a loop, then
suspends, resumes and stops it with a delay between each step. Interrupting the
process (Ctrl-C) cancels the worker's context instead.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			log, err := config.NewLogger(cfg.Logging)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return runDemo(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().StringVar(&cfgFile, "config-file", "", "YAML config file.")

	var err error
	if v, err = config.BindFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("error while binding flags: %w", err)
	}
	return cmd, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, err := newRootCmd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
