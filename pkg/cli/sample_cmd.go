package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-sampler/pkg/models"
	"github.com/ekaya-inc/ekaya-sampler/pkg/render"
	"github.com/ekaya-inc/ekaya-sampler/pkg/services"
)

func newSampleCmd(opts *rootOptions) *cobra.Command {
	var (
		size      int64
		seed      int64
		into      string
		output    string
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "sample <[schema.]table>",
		Short: "Sample rows from a table",
		Long: "Select --size rows uniformly at random from the table and print them, " +
			"or with --into create a new table holding the sampled rows.",
		Example: "  ekaya-sampler sample public.orders --size 100\n" +
			"  ekaya-sampler sample orders --size 100 --seed 42 --output json\n" +
			"  ekaya-sampler sample orders --size 100 --into scratch.orders_sample",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if !cmd.Flags().Changed("output") {
				output = cfg.Sampling.OutputFormat
			}
			if !cmd.Flags().Changed("batch-size") {
				batchSize = cfg.Sampling.InsertBatchSize
			}
			if into == "" {
				if err := render.ValidateFormat(output); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			src, err := datasource.Open(ctx, cfg.Datasource.Type, cfg.Datasource.ToMap(), nil, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := src.Close(); err != nil {
					logger.Warn("Failed to close datasource", zap.Error(err))
				}
			}()

			svc := services.NewSamplerService(src, logger)
			req := models.SampleRequest{
				Source: models.ParseTableRef(args[0], cfg.Sampling.SourceSchema),
				Size:   size,
			}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}

			if into == "" {
				r, err := render.New(output, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				result, err := svc.Sample(ctx, req, r)
				if err != nil {
					return err
				}
				// stdout carries the rendered rows, which may be a json or yaml document.
				printClampNotice(cmd.ErrOrStderr(), result)
				return nil
			}

			result, err := svc.SampleAndMaterialize(ctx, models.MaterializeRequest{
				SampleRequest: req,
				Destination:   models.ParseTableRef(into, cfg.Sampling.DestinationSchema),
				BatchSize:     batchSize,
			})
			if err != nil {
				return err
			}
			return printMaterializeSummary(cmd, result)
		},
	}

	cmd.Flags().Int64VarP(&size, "size", "k", 0, "Number of rows to sample")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for a reproducible sample")
	cmd.Flags().StringVar(&into, "into", "", "Create this [schema.]table and insert the sample into it")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (table, json, yaml); overrides config")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "INSERT statements per batch with --into; overrides config")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

func printMaterializeSummary(cmd *cobra.Command, result *models.MaterializeResult) error {
	out := cmd.OutOrStdout()
	printClampNotice(out, &result.SampleResult)
	_, err := fmt.Fprintf(out, "Created %s with %d of %d rows from %s (%d batches).\n",
		result.Destination, result.Emitted, result.Population, result.Source, result.Batches)
	return err
}

// printClampNotice tells the user when the requested size exceeded the table.
func printClampNotice(w io.Writer, result *models.SampleResult) {
	if !result.Clamped {
		return
	}
	fmt.Fprintf(w, "NOTE: Requested %d rows but %s has only %d; every row was taken.\n",
		result.Requested, result.Source, result.Population)
}
