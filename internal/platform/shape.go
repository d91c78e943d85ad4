package platform

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/ytget/progdeck/internal/model"
)

// The decoders below all produce the same generic tree: maps keyed by
// string, lists, strings and numbers. The shape checks run over that tree
// so every format reports the same field-level errors.

func shapeErr(field, reason string, index int) *model.ValidationError {
	return &model.ValidationError{Field: field, Reason: reason, Index: index}
}

// toPrograms checks a decoded document against the Programs shape
func toPrograms(doc any) (*model.Programs, error) {
	root, ok := asMap(doc)
	if !ok {
		return nil, shapeErr("document", "must be a mapping", -1)
	}

	activeRaw, ok := root[model.FieldActive]
	if !ok {
		return nil, shapeErr(model.FieldActive, "is required", -1)
	}
	active, ok := activeRaw.(string)
	if !ok {
		return nil, shapeErr(model.FieldActive, fmt.Sprintf("must be a string, got %s", typeName(activeRaw)), -1)
	}

	listRaw, ok := root[model.FieldPrograms]
	if !ok || listRaw == nil {
		return nil, shapeErr(model.FieldPrograms, "is required", -1)
	}
	list, ok := asList(listRaw)
	if !ok {
		return nil, shapeErr(model.FieldPrograms, fmt.Sprintf("must be a list, got %s", typeName(listRaw)), -1)
	}

	programs := make([]model.Program, 0, len(list))
	for i, item := range list {
		p, err := toProgram(item, i)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return model.NewPrograms(active, programs)
}

// toProgram checks one decoded program. index is -1 for a standalone document.
func toProgram(v any, index int) (model.Program, error) {
	m, ok := asMap(v)
	if !ok {
		return model.Program{}, shapeErr("program", fmt.Sprintf("must be a mapping, got %s", typeName(v)), index)
	}

	name, err := stringField(m, model.FieldName, index)
	if err != nil {
		return model.Program{}, err
	}
	text, err := linesField(m, index)
	if err != nil {
		return model.Program{}, err
	}
	color, err := stringField(m, model.FieldColor, index)
	if err != nil {
		return model.Program{}, err
	}
	duration, err := numberField(m, model.FieldDuration, index)
	if err != nil {
		return model.Program{}, err
	}

	p, err := model.NewProgram(name, text, color, duration)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			ve.Index = index
		}
		return model.Program{}, err
	}
	return p, nil
}

func stringField(m map[string]any, field string, index int) (string, error) {
	raw, ok := m[field]
	if !ok || raw == nil {
		return "", shapeErr(field, "is required", index)
	}
	s, ok := raw.(string)
	if !ok {
		return "", shapeErr(field, fmt.Sprintf("must be a string, got %s", typeName(raw)), index)
	}
	return s, nil
}

func linesField(m map[string]any, index int) ([]string, error) {
	raw, ok := m[model.FieldText]
	if !ok || raw == nil {
		return nil, shapeErr(model.FieldText, "is required", index)
	}
	list, ok := asList(raw)
	if !ok {
		return nil, shapeErr(model.FieldText, fmt.Sprintf("must be a list of strings, got %s", typeName(raw)), index)
	}
	lines := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, shapeErr(fmt.Sprintf("%s[%d]", model.FieldText, i),
				fmt.Sprintf("must be a string, got %s", typeName(item)), index)
		}
		lines = append(lines, s)
	}
	return lines, nil
}

func numberField(m map[string]any, field string, index int) (float64, error) {
	raw, ok := m[field]
	if !ok || raw == nil {
		return 0, shapeErr(field, "is required", index)
	}
	var f float64
	switch n := raw.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		v, err := n.Float64()
		if err != nil {
			return 0, shapeErr(field, fmt.Sprintf("bad number %q", n.String()), index)
		}
		f = v
	default:
		return 0, shapeErr(field, fmt.Sprintf("must be a number, got %s", typeName(raw)), index)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, shapeErr(field, "must be a finite number", index)
	}
	return f, nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

// asList also accepts the []map[string]any that TOML arrays of tables decode to
func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, uint64, json.Number:
		return "number"
	case []any, []map[string]any, []string:
		return "list"
	case map[string]any, map[any]any:
		return "mapping"
	}
	return fmt.Sprintf("%T", v)
}
