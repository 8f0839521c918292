package main

import (
	"fmt"

	"github.com/athapong/adf-mcp/pkg/pipeline"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newConvertCmd(opts *options) *cobra.Command {
	var (
		outDir    string
		stats     bool
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "convert <file|dir>...",
		Short: "Convert ADF files to Markdown",
		Long: "Convert ADF JSON files to Markdown. Directories are walked for .json and .adf files.\n" +
			"Without --out the Markdown is written to stdout.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			files, err := pipeline.CollectFiles(args)
			if err != nil {
				return errors.Wrap(err, "failed to read input")
			}
			if len(files) == 0 {
				return errors.New("no input files found")
			}

			docs, err := pipeline.LoadDocuments(files, opts.path)
			if err != nil {
				return err
			}

			logger.Infof("Processing %d input files...", len(docs))

			var store pipeline.Store = pipeline.NewWriterStore(cmd.OutOrStdout(), len(docs) > 1)
			if outDir != "" {
				fileStore := pipeline.NewFileStore(outDir)
				if err := fileStore.Check(docs); err != nil {
					return err
				}
				store = fileStore
			}

			p := pipeline.New(opts.newConverter(logger),
				pipeline.WithLogger(logger),
				pipeline.WithStats(stats),
				pipeline.WithBatchSize(batchSize),
			)
			batchErr := p.BatchProcess(cmd.Context(), docs)

			for _, doc := range docs {
				if doc.Err != nil {
					continue
				}
				if doc.Stats != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", doc.Source, doc.Stats.String())
				}
				if err := store.Store(cmd.Context(), doc); err != nil {
					return errors.Wrapf(err, "failed to store %s", doc.Source)
				}
				logger.WithField("source", doc.Source).Debug("Stored Markdown")
			}

			return batchErr
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory to write <name>.md files into")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print Markdown structure counts for each document")
	cmd.Flags().IntVar(&batchSize, "batch-size", 10, "Number of documents converted concurrently")

	return cmd
}
