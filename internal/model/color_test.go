package model

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected color.NRGBA
	}{
		{"#FF0000", color.NRGBA{R: 0xff, A: 0xff}},
		{"#ff8800", color.NRGBA{R: 0xff, G: 0x88, A: 0xff}},
		{"#f80", color.NRGBA{R: 0xff, G: 0x88, A: 0xff}},
		{"#00ff0080", color.NRGBA{G: 0xff, A: 0x80}},
		{"red", color.NRGBA{R: 0xff, A: 0xff}},
		{" SteelBlue ", color.NRGBA{R: 0x46, G: 0x82, B: 0xb4, A: 0xff}},
	}

	for _, test := range tests {
		result, err := ParseColor(test.input)
		if err != nil {
			t.Errorf("ParseColor(%q) error = %v", test.input, err)
			continue
		}
		if result != test.expected {
			t.Errorf("ParseColor(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	inputs := []string{"", "#", "#12", "#12345", "#ggg", "#zz0000", "not-a-color"}

	for _, input := range inputs {
		_, err := ParseColor(input)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("ParseColor(%q) error = %v, expected ErrValidation", input, err)
		}
	}
}

func TestProgramNRGBA(t *testing.T) {
	p := Program{Name: "Clock", Color: "#FF0000"}
	c, err := p.NRGBA()
	if err != nil {
		t.Fatalf("NRGBA() error = %v", err)
	}
	if c != (color.NRGBA{R: 0xff, A: 0xff}) {
		t.Errorf("NRGBA() = %v, expected opaque red", c)
	}

	// Any color string is a valid program, even one that does not resolve
	if _, err := NewProgram("Odd", nil, "sunset-ish", 1); err != nil {
		t.Errorf("NewProgram() with free-form color error = %v", err)
	}
}
