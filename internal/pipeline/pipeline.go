// Package pipeline wires the loader, validator and writer into one run driven
// by a config.Config.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nconklindev/journeyload/internal/config"
	"github.com/nconklindev/journeyload/internal/ingest"
	"github.com/nconklindev/journeyload/internal/types"
	"github.com/nconklindev/journeyload/internal/validate"
)

// ErrValidatorUnavailable is returned when validation is requested but no
// validator was wired into the pipeline.
var ErrValidatorUnavailable = errors.New("validation requested but no schema validator is available")

// Validator is the schema-checking capability.
type Validator interface {
	Validate(t *types.Table) error
}

// WriteFunc persists a table to a destination path.
type WriteFunc func(t *types.Table, path string) error

// Pipeline runs one ingestion. Validator and Write are optional capabilities.
type Pipeline struct {
	Loader    *ingest.Loader
	Validator Validator
	Write     WriteFunc
	Logger    *slog.Logger
}

// Options translates a config into loader options.
func Options(cfg config.Config) ingest.Options {
	opts := ingest.DefaultOptions()
	opts.Sheet = cfg.SheetName
	if !cfg.Header.Auto {
		opts.Header = ingest.HeaderRow(cfg.Header.Row)
	}
	opts.Columns = cfg.UseCols
	opts.RowLimit = cfg.NRows
	opts.DateColumns = cfg.DateCols
	opts.DayFirst = cfg.DayFirst
	opts.DropArtifacts = cfg.DropUnnamed
	return opts
}

// NewValidator builds the Journey Event validator with the configured tolerance.
func NewValidator(cfg config.Config) *validate.Validator {
	rules := validate.JourneyEventRules()
	rules.SpeedTolerance = cfg.SpeedTolerance
	return validate.New(rules)
}

// Run loads source per cfg, selects keep_cols, validates when asked and writes
// the result when cfg.Output is set. Stage completion fractions are sent on
// progress without blocking; progress may be nil.
func (p *Pipeline) Run(source string, cfg config.Config, progress chan<- float64) (*types.IngestResult, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("source", source, "sheet", cfg.SheetName)

	report := func(f float64) {
		if progress == nil {
			return
		}
		select {
		case progress <- f:
		default:
		}
	}

	if cfg.Validate && p.Validator == nil {
		return nil, ErrValidatorUnavailable
	}

	report(0.1)
	loaded, err := p.Loader.Load(source, Options(cfg))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}
	logger.Info("sheet loaded",
		"header_row", loaded.HeaderRow,
		"rows", loaded.Table.NumRows(),
		"columns", loaded.Table.NumCols(),
		"pruned", len(loaded.Pruned),
		"coerced", loaded.Coerced,
	)
	report(0.6)

	result := &types.IngestResult{
		InputFile: source,
		Sheet:     cfg.SheetName,
		HeaderRow: loaded.HeaderRow,
		Table:     loaded.Table,
		Pruned:    loaded.Pruned,
		Coerced:   loaded.Coerced,
	}

	if len(cfg.KeepCols) > 0 {
		result.Table, result.NotSelected = loaded.Table.Select(cfg.KeepCols)
		if len(result.NotSelected) > 0 {
			logger.Debug("keep_cols not present", "columns", result.NotSelected)
		}
	}
	report(0.7)

	if cfg.Validate {
		if err := p.Validator.Validate(result.Table); err != nil {
			return nil, fmt.Errorf("validate %s: %w", source, err)
		}
		result.Validated = true
		logger.Info("schema validated")
	}
	report(0.85)

	if cfg.Output != "" {
		if p.Write == nil {
			return nil, fmt.Errorf("%w: output %q requested but no writer is configured", config.ErrInvalid, cfg.Output)
		}
		if err := p.Write(result.Table, cfg.Output); err != nil {
			return nil, err
		}
		result.OutputFile = cfg.Output
		logger.Info("table written", "output", cfg.Output)
	}
	report(1)

	return result, nil
}
