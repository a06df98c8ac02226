package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Defaults fill in fields a generate request leaves out
type Defaults struct {
	Location string
	Count    int
}

// GenerateRequest is a decoded and coerced generate request
type GenerateRequest struct {
	Location string
	Count    int
}

// fieldError names the request field that failed coercion
type fieldError struct {
	Field string
	Err   error
}

func (e *fieldError) Error() string { return fmt.Sprintf("%s: %v", e.Field, e.Err) }
func (e *fieldError) Unwrap() error { return e.Err }

// ParseGenerateRequest decodes a JSON body. Missing or null fields take the
// defaults; count may be a JSON number or a numeric string. An empty body
// means all defaults.
func ParseGenerateRequest(body io.Reader, defaults Defaults) (GenerateRequest, error) {
	req := GenerateRequest{Location: defaults.Location, Count: defaults.Count}

	raw, err := io.ReadAll(body)
	if err != nil {
		return req, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return req, nil
	}

	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return req, fmt.Errorf("body is not a JSON object: %w", err)
	}

	if v, ok := fields["location"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return req, &fieldError{Field: "location", Err: fmt.Errorf("expected a string, got %T", v)}
		}
		req.Location = s
	}

	if v, ok := fields["count"]; ok && v != nil {
		n, err := coerceCount(v)
		if err != nil {
			return req, &fieldError{Field: "count", Err: err}
		}
		req.Count = n
	}
	return req, nil
}

// coerceCount accepts integers, floats (truncated toward zero) and decimal
// integer strings
func coerceCount(v any) (int, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(n.String(), 10, 0); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
			return 0, fmt.Errorf("%s is not a usable integer", n)
		}
		return int(f), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", n)
		}
		return i, nil
	default:
		return 0, errors.New("expected an integer")
	}
}
