package platform

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a document encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// File extensions per format
var formatExtensions = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
}

// String returns the string representation of Format
func (f Format) String() string {
	return string(f)
}

// IsValid returns true for a supported format
func (f Format) IsValid() bool {
	return f == FormatJSON || f == FormatYAML || f == FormatTOML
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatExtensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unsupported document extension %q: %s", ext, path)
}

// ParseFormat accepts a format name; "yml" is an alias of yaml
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "yml" {
		return FormatYAML, nil
	}
	if f := Format(name); f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("unsupported document format %q", name)
}
