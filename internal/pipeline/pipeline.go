package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/svgencoder/internal/discover"
	"github.com/nao1215/svgencoder/internal/encoder"
	"github.com/nao1215/svgencoder/internal/model"
)

// ConvertFunc converts one file. By default an encoder.Converter logging
// to the pipeline's logger is used.
type ConvertFunc func(filePath, inputRoot, outputRoot string, overwrite bool) (*model.ConversionRecord, error)

// Observer is notified after every converted file, in processing order.
// Returning an error aborts the run.
type Observer func(record *model.ConversionRecord) error

// Pipeline drives a single conversion run.
type Pipeline struct {
	// logger is used for structured logging during execution.
	logger *slog.Logger

	// convert converts a single discovered file.
	convert ConvertFunc

	// observers receive each record after conversion.
	observers []Observer
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithConverter replaces the function used to convert each file.
func WithConverter(fn ConvertFunc) Option {
	return func(p *Pipeline) {
		p.convert = fn
	}
}

// WithObserver adds an observer called after every converted file.
func WithObserver(obs Observer) Option {
	return func(p *Pipeline) {
		p.observers = append(p.observers, obs)
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.convert == nil {
		p.convert = encoder.NewConverter(p.logger).Convert
	}
	return p
}

// Execute converts every SVG file found for req.
//
// If ctx is cancelled the run stops before the next file and the partial
// summary is returned with Cancelled set and a nil error. A conversion or
// observer error aborts the run; the summary of the files processed so far is
// returned together with the error.
func (p *Pipeline) Execute(ctx context.Context, req *model.ConversionRequest) (*model.RunSummary, error) {
	summary := model.NewRunSummary(*req)
	defer summary.Finish()

	p.logger.Info("starting conversion",
		"input", req.InputRoot,
		"output", req.OutputRoot,
		"recursive", req.Recursive,
		"overwrite", req.Overwrite,
	)

	for path, err := range discover.SVGFiles(req.InputRoot, req.Recursive) {
		if ctx.Err() != nil {
			p.logger.Warn("conversion cancelled", "processed", summary.Count(), "reason", ctx.Err())
			summary.Cancelled = true
			return summary, nil
		}

		if err != nil {
			p.logger.Warn("error accessing path", "path", path, "error", err)
			continue
		}

		record, err := p.convert(path, req.InputRoot, req.OutputRoot, req.Overwrite)
		if err != nil {
			p.logger.Error("conversion failed", "path", path, "error", err)
			return summary, err
		}
		summary.Add(*record)

		p.logger.Debug("converted file",
			"path", path,
			"output", record.OutputPath(),
			"encodedLength", record.EncodedLength,
			"skipped", record.Skipped,
		)

		for _, obs := range p.observers {
			if err := obs(record); err != nil {
				return summary, err
			}
		}
	}

	// A signal that arrives while the last file is converted still marks the run.
	if ctx.Err() != nil {
		summary.Cancelled = true
	}

	p.logger.Info("conversion finished", "processed", summary.Count(), "skipped", summary.SkippedCount())
	return summary, nil
}
