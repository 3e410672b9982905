package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type fileFormat struct {
	Tools []Descriptor `yaml:"tools"`
}

// LoadFile reads a YAML catalog file and prepares every tool in it.
func LoadFile(path string) ([]Descriptor, error) {
	if path == "" {
		return nil, errors.New("catalog path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return Decode(data)
}

func Decode(data []byte) ([]Descriptor, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file fileFormat
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	tools := make([]Descriptor, 0, len(file.Tools))
	for _, t := range file.Tools {
		p, err := Prepare(t)
		if err != nil {
			return nil, err
		}
		tools = append(tools, p)
	}
	return tools, nil
}

// Encode writes tools in the catalog file format.
func Encode(w io.Writer, tools []Descriptor) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fileFormat{Tools: tools}); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return enc.Close()
}
