package platform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ytget/progdeck/internal/model"
)

// Indentation limits
const (
	DefaultIndent = 2
	MaxIndent     = 8
)

// DocumentService decodes and encodes Programs documents
type DocumentService struct {
	indent int
	logger *zap.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService() *DocumentService {
	return &DocumentService{
		indent: DefaultIndent,
		logger: zap.NewNop(),
	}
}

// SetIndent sets the indentation width used when encoding.
// Zero writes compact JSON; YAML and TOML keep their minimum indentation.
func (d *DocumentService) SetIndent(width int) {
	if width < 0 {
		width = 0
	}
	if width > MaxIndent {
		width = MaxIndent
	}
	d.indent = width
}

// SetLogger sets the logger; nil disables logging
func (d *DocumentService) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d.logger = logger
}

// DecodePrograms reads a Programs document and checks its shape
func (d *DocumentService) DecodePrograms(r io.Reader, format Format) (*model.Programs, error) {
	doc, err := d.decodeTree(r, format)
	if err != nil {
		return nil, err
	}
	return toPrograms(doc)
}

// DecodeProgram reads a single Program document and checks its shape
func (d *DocumentService) DecodeProgram(r io.Reader, format Format) (model.Program, error) {
	doc, err := d.decodeTree(r, format)
	if err != nil {
		return model.Program{}, err
	}
	return toProgram(doc, -1)
}

// EncodePrograms writes ps in the given format
func (d *DocumentService) EncodePrograms(w io.Writer, format Format, ps *model.Programs) error {
	return d.encode(w, format, ps.Clone())
}

// EncodeProgram writes a single program in the given format
func (d *DocumentService) EncodeProgram(w io.Writer, format Format, p model.Program) error {
	return d.encode(w, format, p.Clone())
}

// Load reads a Programs document; the format follows the file extension
func (d *DocumentService) Load(path string) (*model.Programs, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	ps, err := d.DecodePrograms(f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	d.logger.Debug("document loaded",
		zap.String("path", path),
		zap.Stringer("format", format),
		zap.Int("programs", ps.Len()),
	)
	return ps, nil
}

// Save writes ps atomically; the format follows the file extension
func (d *DocumentService) Save(path string, ps *model.Programs) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return d.SaveAs(path, format, ps)
}

// SaveAs writes ps atomically in the given format regardless of extension
func (d *DocumentService) SaveAs(path string, format Format, ps *model.Programs) error {
	if err := ps.Validate(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := d.EncodePrograms(&buf, format, ps); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	d.logger.Debug("document saved",
		zap.String("path", path),
		zap.Stringer("format", format),
		zap.Int("bytes", buf.Len()),
	)
	return nil
}

// decodeTree parses the raw document into maps, lists and scalars.
// Syntax errors are reported as validation errors on the whole document.
func (d *DocumentService) decodeTree(r io.Reader, format Format) (any, error) {
	var doc any
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		err = dec.Decode(&doc)
		if err == nil {
			if _, terr := dec.Token(); !errors.Is(terr, io.EOF) {
				return nil, shapeErr("document", "unexpected trailing data", -1)
			}
		}
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	case FormatTOML:
		var m map[string]any
		_, err = toml.NewDecoder(r).Decode(&m)
		doc = m
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
	if errors.Is(err, io.EOF) {
		return nil, shapeErr("document", "is empty", -1)
	}
	if err != nil {
		return nil, shapeErr("document", fmt.Sprintf("invalid %s: %v", format, err), -1)
	}
	return doc, nil
}

func (d *DocumentService) encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		if d.indent > 0 {
			enc.SetIndent("", strings.Repeat(" ", d.indent))
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if d.indent > 0 {
			enc.SetIndent(d.indent)
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.Indent = strings.Repeat(" ", d.indent)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported document format %q", format)
	}
	return nil
}
