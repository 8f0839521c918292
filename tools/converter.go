package tools

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/athapong/adf-mcp/pkg/adf"
	"github.com/athapong/adf-mcp/pkg/mdstats"
	"github.com/athapong/adf-mcp/pkg/metrics"
	"github.com/sirupsen/logrus"
)

const separator = "----------------------------------------"

var logger = func() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	return l
}()

// countTokens is swapped out in tests, the real encoding may need network access.
var countTokens = mdstats.CountTokens

// converterOptions builds converter options from ADF_MAX_DEPTH and ADF_DATE_LAYOUT.
func converterOptions() []adf.Option {
	opts := []adf.Option{adf.WithLogger(logger)}
	if v := os.Getenv("ADF_MAX_DEPTH"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			logger.WithField("value", v).Warn("ignoring invalid ADF_MAX_DEPTH")
		} else {
			opts = append(opts, adf.WithMaxDepth(depth))
		}
	}
	if v := os.Getenv("ADF_DATE_LAYOUT"); v != "" {
		opts = append(opts, adf.WithDateLayout(v))
	}
	return opts
}

var converter = sync.OnceValue(func() *adf.Converter {
	return adf.NewConverter(converterOptions()...)
})

// render converts root with the shared converter and records metrics under source.
func render(source string, root *adf.Node) (*adf.Result, error) {
	start := time.Now()
	res, err := converter().ConvertWithResult(root)
	metrics.ObserveConversion(source, res, err, time.Since(start))
	return res, err
}

// parseAndRender parses an ADF JSON payload and renders it.
func parseAndRender(source string, data []byte, path string) (*adf.Result, error) {
	root, err := adf.ParseAt(data, path)
	if err != nil {
		metrics.ObserveConversion(source, nil, err, 0)
		return nil, fmt.Errorf("failed to parse ADF: %v", err)
	}
	res, err := render(source, root)
	if err != nil {
		return nil, fmt.Errorf("failed to convert ADF: %v", err)
	}
	return res, nil
}

func formatWarnings(warnings []adf.Warning) string {
	var sb strings.Builder
	sb.WriteString("Warnings:\n")
	for _, w := range warnings {
		sb.WriteString("- " + w.String() + "\n")
	}
	return sb.String()
}

func formatStats(markdown string) string {
	var sb strings.Builder
	sb.WriteString("Stats: " + mdstats.Analyze(markdown).String() + "\n")
	if tokens, err := countTokens(markdown); err != nil {
		sb.WriteString(fmt.Sprintf("Tokens: unavailable (%v)\n", err))
	} else {
		sb.WriteString(fmt.Sprintf("Tokens: %d\n", tokens))
	}
	return sb.String()
}
