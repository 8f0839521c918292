package main

import (
	"fmt"
	"os"

	"github.com/athapong/adf-mcp/pkg/adf"
	"github.com/athapong/adf-mcp/pkg/mddiff"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newDiffCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <source> <target>",
		Short: "Diff the Markdown renderings of two ADF files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			converter := opts.newConverter(logger)

			rendered := make([]string, 0, len(args))
			for _, file := range args {
				data, err := os.ReadFile(file)
				if err != nil {
					return errors.Wrapf(err, "read %s", file)
				}
				root, err := adf.ParseAt(data, opts.path)
				if err != nil {
					return errors.Wrapf(err, "parse %s", file)
				}
				res, err := converter.ConvertWithResult(root)
				if err != nil {
					return errors.Wrapf(err, "convert %s", file)
				}
				rendered = append(rendered, res.Markdown)
			}

			out := cmd.OutOrStdout()
			if !mddiff.Changed(rendered[0], rendered[1]) {
				fmt.Fprintln(out, "No content changes")
				return nil
			}
			fmt.Fprint(out, mddiff.Semantic(rendered[0], rendered[1]))
			return nil
		},
	}
}
