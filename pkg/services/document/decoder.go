package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/de-tools/risk-flags/pkg/models/domain"
	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatHJSON Format = "hjson"
	FormatYAML  Format = "yaml"
)

var (
	ErrEmptyDocument     = errors.New("document is empty")
	ErrMissingFinancials = errors.New("document has no financials list")
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// ParseFormat accepts a format name as given on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "hjson":
		return FormatHJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromFilename picks the format from the file extension, defaulting to JSON.
func FormatFromFilename(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".hjson":
		return FormatHJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// envelope covers both the upload form shape {"data": {...}} and a bare document.
type envelope struct {
	Data       json.RawMessage `json:"data"`
	Financials json.RawMessage `json:"financials"`
}

// Decode reads a financial statement document in the given format.
func Decode(r io.Reader, format Format) (*domain.FinancialStatementSet, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyDocument
	}

	data, err := toJSON(raw, format)
	if err != nil {
		return nil, err
	}
	return decodeJSON(data)
}

func toJSON(raw []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return raw, nil
	case FormatHJSON:
		var v any
		if err := hjson.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to parse hjson document: %w", err)
		}
		return json.Marshal(v)
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to parse yaml document: %w", err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to convert yaml document: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func decodeJSON(data []byte) (*domain.FinancialStatementSet, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	financials := env.Financials
	if len(financials) == 0 && len(env.Data) > 0 {
		var inner envelope
		if err := json.Unmarshal(env.Data, &inner); err != nil {
			return nil, fmt.Errorf("%w: data is not an object", ErrMissingFinancials)
		}
		financials = inner.Financials
	}

	trimmed := bytes.TrimSpace(financials)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrMissingFinancials
	}

	var doc domain.FinancialStatementSet
	if err := json.Unmarshal(trimmed, &doc.Financials); err != nil {
		return nil, fmt.Errorf("failed to parse financials: %w", err)
	}
	return &doc, nil
}
