package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"field-mapper/internal/logging"
)

type rootOptions struct {
	debug  bool
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "field-mapper",
		Short:         "Resolve column mappings between a source table and a platform entity",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			logger, err := logging.New(opts.debug)
			if err != nil {
				return err
			}

			opts.logger = logger

			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newResolveCmd(opts), newClassifyCmd(opts))

	return cmd
}
