package main

import (
	"io"

	"github.com/athapong/adf-mcp/pkg/adf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options are the flags shared by every subcommand.
type options struct {
	logLevel   string
	maxDepth   int
	dateLayout string
	path       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "adf2md",
		Short:         "Convert Atlassian Document Format (ADF) JSON to Markdown",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	flags.IntVar(&opts.maxDepth, "max-depth", adf.DefaultMaxDepth, "Maximum node nesting depth before content is dropped")
	flags.StringVar(&opts.dateLayout, "date-layout", adf.DefaultDateLayout, "Go time layout for date nodes (UTC)")
	flags.StringVar(&opts.path, "path", "", "Path of the ADF document inside each JSON file, e.g. fields.description")

	cmd.AddCommand(newConvertCmd(opts))
	cmd.AddCommand(newDiffCmd(opts))

	return cmd
}

func (o *options) newLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(o.logLevel)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger, nil
}

func (o *options) newConverter(logger *logrus.Logger) *adf.Converter {
	return adf.NewConverter(
		adf.WithLogger(logger),
		adf.WithMaxDepth(o.maxDepth),
		adf.WithDateLayout(o.dateLayout),
	)
}
