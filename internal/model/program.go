package model

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Field names as they appear in documents
const (
	FieldName     = "name"
	FieldText     = "text"
	FieldColor    = "color"
	FieldDuration = "duration"
	FieldActive   = "active"
	FieldPrograms = "programs"
)

// Program is a single named, colored, timed sequence of text lines
type Program struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Text     []string `json:"text" yaml:"text" toml:"text"`             // one entry per display line, top to bottom
	Color    string   `json:"color" yaml:"color" toml:"color"`          // color name or hex code
	Duration float64  `json:"duration" yaml:"duration" toml:"duration"` // unit is chosen by the consumer
}

// NewProgram creates a validated program. Text is copied and never nil.
func NewProgram(name string, text []string, color string, duration float64) (Program, error) {
	p := Program{
		Name:     name,
		Text:     copyLines(text),
		Color:    color,
		Duration: duration,
	}
	if err := p.Validate(); err != nil {
		return Program{}, err
	}
	return p, nil
}

// Validate checks that every required field is present and well typed
func (p Program) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid(FieldName, "is required")
	}
	if strings.TrimSpace(p.Color) == "" {
		return invalid(FieldColor, "is required")
	}
	if math.IsNaN(p.Duration) || math.IsInf(p.Duration, 0) {
		return invalid(FieldDuration, "must be a finite number")
	}
	if p.Duration < 0 {
		return invalid(FieldDuration, "must not be negative")
	}
	return nil
}

// LineCount returns the number of text lines
func (p Program) LineCount() int {
	return len(p.Text)
}

// MaxDisplayDuration is the longest duration a program can be shown for.
// Larger values saturate to it.
const MaxDisplayDuration = time.Duration(math.MaxInt64)

// DisplayDuration converts Duration into a time.Duration using unit
func (p Program) DisplayDuration(unit DurationUnit) time.Duration {
	d := p.Duration * float64(unit.Scale())
	if d >= float64(math.MaxInt64) {
		return MaxDisplayDuration
	}
	return time.Duration(d)
}

// Clone returns a copy that shares no memory with p
func (p Program) Clone() Program {
	p.Text = copyLines(p.Text)
	return p
}

// HasName reports whether p is identified by name
func (p Program) HasName(name string) bool {
	return sameName(p.Name, name)
}

// sameName compares names after NFC normalization so composed and decomposed
// forms of the same text identify the same program
func sameName(a, b string) bool {
	if a == b {
		return true
	}
	return norm.NFC.String(a) == norm.NFC.String(b)
}

func copyLines(text []string) []string {
	lines := make([]string, len(text))
	copy(lines, text)
	return lines
}
