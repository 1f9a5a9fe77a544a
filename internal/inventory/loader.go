package inventory

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat indicates an inventory file that is neither YAML nor JSON.
const ErrUnsupportedFormat = constError("unsupported inventory format")

type constError string

func (e constError) Error() string { return string(e) }

// Format is an inventory file encoding.
type Format string

// Formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// File is the on-disk layout of an inventory.
type File struct {
	Records []Record `json:"records" yaml:"records"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadFile reads an inventory file, choosing the decoder by extension.
func LoadFile(path string) ([]Record, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}
	records, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("inventory %s: %w", path, err)
	}
	return records, nil
}

// Decode reads an inventory in the given format.
func Decode(r io.Reader, format Format) ([]Record, error) {
	var file File
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to parse inventory: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to parse inventory: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	for i := range file.Records {
		if file.Records[i].ID == "" {
			file.Records[i].ID = fmt.Sprintf("record-%d", i+1)
		}
	}
	return file.Records, nil
}
