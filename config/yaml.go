package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cbegin/pulsegen/xerr"
)

// Load reads and parses a schedule document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerr.Wrap(xerr.InvalidInput, err, "reading %s", path)
	}
	return Parse(data)
}

// Parse decodes a schedule document from raw YAML bytes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, xerr.Wrap(xerr.InvalidInput, err, "parsing schedule document")
	}
	return &doc, nil
}
