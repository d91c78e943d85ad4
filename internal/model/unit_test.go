package model

import (
	"testing"
	"time"
)

func TestDurationUnit_IsValid(t *testing.T) {
	tests := []struct {
		unit     DurationUnit
		expected bool
	}{
		{UnitSeconds, true},
		{UnitMilliseconds, true},
		{UnitMinutes, true},
		{DurationUnit(""), false},
		{DurationUnit("h"), false},
	}

	for _, test := range tests {
		result := test.unit.IsValid()
		if result != test.expected {
			t.Errorf("DurationUnit(%s).IsValid() = %v, expected %v", test.unit, result, test.expected)
		}
	}
}

func TestDurationUnit_Scale(t *testing.T) {
	tests := []struct {
		unit     DurationUnit
		expected time.Duration
	}{
		{UnitSeconds, time.Second},
		{UnitMilliseconds, time.Millisecond},
		{UnitMinutes, time.Minute},
		{DurationUnit(""), time.Second},
	}

	for _, test := range tests {
		result := test.unit.Scale()
		if result != test.expected {
			t.Errorf("DurationUnit(%s).Scale() = %v, expected %v", test.unit, result, test.expected)
		}
	}
}

func TestDurationUnit_String(t *testing.T) {
	unit := UnitMilliseconds
	expected := "ms"
	result := unit.String()

	if result != expected {
		t.Errorf("DurationUnit.String() = %s, expected %s", result, expected)
	}
}
