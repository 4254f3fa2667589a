package backlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names accepted by [SerializerFor].
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Serializer encodes a [Backlog] into a document.
type Serializer interface {
	// Format returns the format name ([FormatYAML] or [FormatJSON]).
	Format() string
	Marshal(b *Backlog) ([]byte, error)
}

// YAMLSerializer writes block-style YAML with 2-space indentation and keys
// in declaration order.
type YAMLSerializer struct{}

func (YAMLSerializer) Format() string { return FormatYAML }

func (YAMLSerializer) Marshal(b *Backlog) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(b.document()); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	return buf.Bytes(), nil
}

// JSONSerializer writes 2-space indented JSON with a trailing newline.
// Non-ASCII and HTML characters are written as is.
type JSONSerializer struct{}

func (JSONSerializer) Format() string { return FormatJSON }

func (JSONSerializer) Marshal(b *Backlog) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(b.document()); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}

	return buf.Bytes(), nil
}

// SerializerFor picks the serializer for an explicit format name, falling
// back to the output file extension (".json" selects JSON) and then YAML.
func SerializerFor(format, outputPath string) (Serializer, error) {
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		return YAMLSerializer{}, nil
	case FormatJSON:
		return JSONSerializer{}, nil
	case "":
	default:
		return nil, fmt.Errorf("%w: %q (want yaml or json)", ErrUnknownFormat, format)
	}

	if strings.EqualFold(filepath.Ext(outputPath), ".json") {
		return JSONSerializer{}, nil
	}

	return YAMLSerializer{}, nil
}
