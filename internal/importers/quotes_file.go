package importers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type JSONConverter struct {
	Data []byte
}

func (c JSONConverter) Convert() ([]RawQuote, error) {
	var records []RawQuote
	if err := json.Unmarshal(c.Data, &records); err != nil {
		return nil, fmt.Errorf("invalid JSON quotes file: %w", err)
	}
	return records, nil
}

type YAMLConverter struct {
	Data []byte
}

func (c YAMLConverter) Convert() ([]RawQuote, error) {
	var records []RawQuote
	if err := yaml.Unmarshal(c.Data, &records); err != nil {
		return nil, fmt.Errorf("invalid YAML quotes file: %w", err)
	}
	return records, nil
}

var (
	_ Converter = JSONConverter{}
	_ Converter = YAMLConverter{}
)

// ConverterForFile reads path and picks a converter from its extension.
func ConverterForFile(path string) (Converter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONConverter{Data: data}, nil
	case ".yaml", ".yml":
		return YAMLConverter{Data: data}, nil
	default:
		return nil, fmt.Errorf("unsupported quotes file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// ImportFile imports the quotes file at path into store.
func ImportFile(ctx context.Context, store QuoteCreator, path string, logger *slog.Logger) (ImportResult, error) {
	converter, err := ConverterForFile(path)
	if err != nil {
		return ImportResult{}, err
	}
	return NewPipeline(store, logger).Import(ctx, converter)
}
