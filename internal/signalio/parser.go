// Package signalio reads classifier signals from CSV, JSON lines and YAML files.
package signalio

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/common"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"
)

// Format identifies a signal file encoding.
type Format string

// Supported formats.
const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// DetectFormat picks a format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s (use .csv, .jsonl or .yaml)", common.ErrUnsupportedIO, path)
	}
}

// Parser implements signal file parsing.
type Parser struct{}

// NewParser creates a new signal parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile opens path and parses it according to its extension.
func (p *Parser) ParseFile(ctx context.Context, path string) ([]model.RawSignal, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open signal file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return p.Parse(ctx, f, format)
}

// Parse reads signals from r in the given format.
func (p *Parser) Parse(ctx context.Context, r io.Reader, format Format) ([]model.RawSignal, error) {
	var (
		signals []model.RawSignal
		err     error
	)
	switch format {
	case FormatCSV:
		signals, err = p.parseCSV(ctx, r)
	case FormatJSONL:
		signals, err = p.parseJSONL(ctx, r)
	case FormatYAML:
		signals, err = p.parseYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedIO, format)
	}
	if err != nil {
		return nil, err
	}
	if len(signals) == 0 {
		return nil, common.ErrNoSignals
	}
	return signals, nil
}

// parseCSV expects label,confidence rows. A first row whose confidence column
// does not parse as a number is treated as a header.
func (p *Parser) parseCSV(ctx context.Context, r io.Reader) ([]model.RawSignal, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var signals []model.RawSignal
	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv line %d: %w", common.ErrInvalidInput, line, err)
		}

		confidence, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("%w: csv line %d: confidence %q is not a number", common.ErrInvalidInput, line, record[1])
		}

		signals = append(signals, model.RawSignal{Label: record[0], Confidence: confidence})
	}

	return signals, nil
}

// parseJSONL expects one {"label":..., "confidence":...} object per line.
// Blank lines are skipped.
func (p *Parser) parseJSONL(ctx context.Context, r io.Reader) ([]model.RawSignal, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var signals []model.RawSignal
	for line := 1; scanner.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var raw struct {
			Confidence *float64 `json:"confidence"`
			Label      string   `json:"label"`
		}
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, fmt.Errorf("%w: jsonl line %d: %w", common.ErrInvalidInput, line, err)
		}
		if raw.Confidence == nil {
			return nil, fmt.Errorf("%w: jsonl line %d: missing confidence", common.ErrInvalidInput, line)
		}

		signals = append(signals, model.RawSignal{Label: raw.Label, Confidence: *raw.Confidence})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jsonl: %w", err)
	}

	return signals, nil
}

// parseYAML expects a top-level list of label/confidence mappings.
func (p *Parser) parseYAML(r io.Reader) ([]model.RawSignal, error) {
	var signals []model.RawSignal
	if err := yaml.NewDecoder(r).Decode(&signals); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: yaml: %w", common.ErrInvalidInput, err)
	}
	return signals, nil
}
