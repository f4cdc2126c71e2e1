package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"field-mapper/internal/config"
	"field-mapper/internal/plan"
	"field-mapper/internal/render"
	"field-mapper/internal/schema"
	"field-mapper/internal/suggest"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
)

type resolveOptions struct {
	source     string
	target     string
	configPath string
	format     string
	output     string
	columns    []string
	suggester  string
}

func newResolveCmd(root *rootOptions) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve mappings from a source schema onto a target schema",
		Example: `  field-mapper resolve --source customer.yaml --target account.yaml
  field-mapper resolve -s customer.yaml -t account.yaml --config field-mapper.yaml --format yaml -o plan.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd, root, opts)
		},
	}

	opts.bind(cmd.Flags())

	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func (o *resolveOptions) bind(flags *pflag.FlagSet) {
	flags.StringVarP(&o.source, "source", "s", "", "Source schema YAML document")
	flags.StringVarP(&o.target, "target", "t", "", "Target schema YAML document")
	flags.StringVarP(&o.configPath, "config", "c", "",
		"Config file (defaults to $"+config.EnvConfigPath+")")
	flags.StringVarP(&o.format, "format", "f", formatTable, "Output format: table or yaml")
	flags.StringVarP(&o.output, "output", "o", "", "Write output to this file instead of stdout")
	flags.StringSliceVar(&o.columns, "columns", nil, "Only ask for suggestions for these source columns")
	flags.StringVar(&o.suggester, "suggester", "", "Override suggester kind: none, remote or heuristic")
}

func runResolve(cmd *cobra.Command, root *rootOptions, opts *resolveOptions) error {
	if opts.format != formatTable && opts.format != formatYAML {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	logger := root.logger

	cfg, err := config.Load(config.ResolveConfigPath(opts.configPath, os.Getenv), os.Getenv)
	if err != nil {
		return err
	}

	if opts.suggester != "" {
		cfg.Suggester.Kind = config.SuggesterKind(opts.suggester)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	source, err := schema.LoadFile(opts.source)
	if err != nil {
		return err
	}

	target, err := schema.LoadFile(opts.target)
	if err != nil {
		return err
	}

	if !target.Origin().IsTarget() {
		logger.Warn("target schema does not come from a platform export or query",
			zap.String("origin", string(target.Origin())))
	}

	src, err := suggest.New(cfg.Suggester, cfg.Weights, logger)
	if err != nil {
		return err
	}

	logger.Debug("resolving",
		zap.String("source", source.Name()),
		zap.String("target", target.Name()),
		zap.String("suggester", string(cfg.Suggester.ResolvedKind())))

	resolver := plan.NewResolver(src,
		plan.WithLogger(logger),
		plan.WithFilter(suggest.Filter(opts.columns)),
	)

	res, err := resolver.Resolve(cmd.Context(), source, target, cfg.Weights)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colored := !color.NoColor

	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}

		defer func() {
			if cerr := f.Close(); cerr != nil {
				logger.Error("failed to close output file", zap.Error(cerr))
			}
		}()

		out = f
		colored = false
	}

	if opts.format == formatYAML {
		return render.YAML(out, res)
	}

	return render.Table(out, res, colored)
}
