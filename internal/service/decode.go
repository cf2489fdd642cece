package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"autosphere-api/internal/model"
)

// The oracle is untrusted: every required key must be present with the right
// JSON type before a model.Car is built. Unknown keys are ignored.

type object map[string]json.RawMessage

var null = []byte("null")

// parseDocument checks that text holds exactly one JSON value
func parseDocument(text string) (json.RawMessage, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse oracle response: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parse oracle response: trailing data after JSON document")
	}
	return raw, nil
}

func decodeCar(text string) (*model.Car, error) {
	raw, err := parseDocument(text)
	if err != nil {
		return nil, err
	}
	return carFromRaw(raw, "")
}

func decodeCarList(text string) ([]model.Car, error) {
	raw, err := parseDocument(text)
	if err != nil {
		return nil, err
	}

	items, err := asArray(raw, "cars")
	if err != nil {
		return nil, err
	}

	cars := make([]model.Car, 0, len(items))
	for i, item := range items {
		car, err := carFromRaw(item, fmt.Sprintf("[%d].", i))
		if err != nil {
			return nil, err
		}
		cars = append(cars, *car)
	}
	return cars, nil
}

func carFromRaw(raw json.RawMessage, prefix string) (*model.Car, error) {
	obj, err := asObject(raw, strings.TrimSuffix(prefix, "."))
	if err != nil {
		return nil, err
	}

	var car model.Car
	strs := []struct {
		key string
		dst *string
	}{
		{"make", &car.Make},
		{"model", &car.Model},
		{"category", &car.Category},
		{"currency", &car.Currency},
		{"licenseRequired", &car.LicenseRequired},
		{"description", &car.Description},
	}
	for _, f := range strs {
		if *f.dst, err = obj.str(f.key, prefix); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(car.Make) == "" {
		return nil, fmt.Errorf("invalid field %smake: empty", prefix)
	}
	if strings.TrimSpace(car.Model) == "" {
		return nil, fmt.Errorf("invalid field %smodel: empty", prefix)
	}

	year, err := obj.number("year", prefix)
	if err != nil {
		return nil, err
	}
	if year != math.Trunc(year) || year < math.MinInt32 || year > math.MaxInt32 {
		return nil, fmt.Errorf("invalid field %syear: %v is not an integer", prefix, year)
	}
	car.Year = int(year)

	if car.MarketPrice, err = obj.number("marketPrice", prefix); err != nil {
		return nil, err
	}
	if car.MarketPrice < 0 {
		return nil, fmt.Errorf("invalid field %smarketPrice: negative", prefix)
	}

	fixesRaw, err := obj.field("diyFixes", prefix)
	if err != nil {
		return nil, err
	}
	fixes, err := asArray(fixesRaw, prefix+"diyFixes")
	if err != nil {
		return nil, err
	}
	car.DIYFixes = make([]model.DIYFix, 0, len(fixes))
	for i, fr := range fixes {
		fix, err := fixFromRaw(fr, fmt.Sprintf("%sdiyFixes[%d].", prefix, i))
		if err != nil {
			return nil, err
		}
		car.DIYFixes = append(car.DIYFixes, fix)
	}

	return &car, nil
}

func fixFromRaw(raw json.RawMessage, prefix string) (model.DIYFix, error) {
	var fix model.DIYFix

	obj, err := asObject(raw, strings.TrimSuffix(prefix, "."))
	if err != nil {
		return fix, err
	}

	if fix.Problem, err = obj.str("problem", prefix); err != nil {
		return fix, err
	}

	difficulty, err := obj.str("difficulty", prefix)
	if err != nil {
		return fix, err
	}
	fix.Difficulty = model.Difficulty(difficulty)
	if !fix.Difficulty.Valid() {
		return fix, fmt.Errorf("invalid field %sdifficulty: %q is not one of Easy, Medium or Hard", prefix, difficulty)
	}

	if fix.ToolsNeeded, err = obj.strings("toolsNeeded", prefix); err != nil {
		return fix, err
	}
	if fix.Steps, err = obj.strings("steps", prefix); err != nil {
		return fix, err
	}
	return fix, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), null)
}

// firstByte returns the first non-space byte of a JSON value
func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func asObject(raw json.RawMessage, path string) (object, error) {
	if firstByte(raw) != '{' {
		return nil, fmt.Errorf("invalid field %s: expected an object", displayPath(path))
	}
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("invalid field %s: %w", displayPath(path), err)
	}
	return obj, nil
}

func asArray(raw json.RawMessage, path string) ([]json.RawMessage, error) {
	if firstByte(raw) != '[' {
		return nil, fmt.Errorf("invalid field %s: expected an array", displayPath(path))
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("invalid field %s: %w", displayPath(path), err)
	}
	return items, nil
}

func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}

func (o object) field(key, prefix string) (json.RawMessage, error) {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return nil, fmt.Errorf("missing field %s%s", prefix, key)
	}
	return raw, nil
}

func (o object) str(key, prefix string) (string, error) {
	raw, err := o.field(key, prefix)
	if err != nil {
		return "", err
	}
	return asString(raw, prefix+key)
}

func asString(raw json.RawMessage, path string) (string, error) {
	if firstByte(raw) != '"' {
		return "", fmt.Errorf("invalid field %s: expected a string", path)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("invalid field %s: %w", path, err)
	}
	return s, nil
}

func (o object) number(key, prefix string) (float64, error) {
	raw, err := o.field(key, prefix)
	if err != nil {
		return 0, err
	}
	if c := firstByte(raw); c != '-' && (c < '0' || c > '9') {
		return 0, fmt.Errorf("invalid field %s%s: expected a number", prefix, key)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("invalid field %s%s: %w", prefix, key, err)
	}
	return f, nil
}

func (o object) strings(key, prefix string) ([]string, error) {
	raw, err := o.field(key, prefix)
	if err != nil {
		return nil, err
	}
	items, err := asArray(raw, prefix+key)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, err := asString(item, fmt.Sprintf("%s%s[%d]", prefix, key, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
