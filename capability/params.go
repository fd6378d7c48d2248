// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package capability

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golobby/cast"
)

// DecodeParams decodes validated params into a struct using `param` tags.
func DecodeParams(params Params, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "param",
		Result:           out,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(params)); err != nil {
		return fmt.Errorf("decode params: %w", err)
	}
	return nil
}

var (
	intType   = reflect.TypeOf(int(0))
	floatType = reflect.TypeOf(float64(0))
	boolType  = reflect.TypeOf(false)
)

// normalize converts v to the Go representation of t: string, int,
// float64, bool, []int or []string. Lenient mode additionally converts
// strings and scalars.
func normalize(t ParamType, v any, strict bool) (any, error) {
	switch t {
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		if !strict {
			switch v.(type) {
			case bool, int, int64, float64, json.Number:
				return fmt.Sprint(v), nil
			}
		}
	case TypeInteger:
		if n, ok := asInt(v); ok {
			return n, nil
		}
		if s, ok := v.(string); ok && !strict {
			out, err := cast.FromType(strings.TrimSpace(s), intType)
			if n, ok := asInt(out); err == nil && ok {
				return n, nil
			}
		}
	case TypeNumber:
		if f, ok := asFloat(v); ok {
			return f, nil
		}
		if s, ok := v.(string); ok && !strict {
			out, err := cast.FromType(strings.TrimSpace(s), floatType)
			if f, ok := asFloat(out); err == nil && ok {
				return f, nil
			}
		}
	case TypeBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
		if !strict {
			switch x := v.(type) {
			case string:
				out, err := cast.FromType(strings.TrimSpace(x), boolType)
				if b, ok := out.(bool); err == nil && ok {
					return b, nil
				}
			default:
				if n, ok := asInt(x); ok && (n == 0 || n == 1) {
					return n == 1, nil
				}
			}
		}
	case TypeArrayInteger:
		items, ok := asList(v, strict)
		if ok {
			out := make([]int, 0, len(items))
			for i, item := range items {
				n, err := normalize(TypeInteger, item, strict)
				if err != nil {
					return nil, fmt.Errorf("item %d: %w", i, err)
				}
				out = append(out, n.(int))
			}
			return out, nil
		}
	case TypeArrayString:
		items, ok := asList(v, strict)
		if ok {
			out := make([]string, 0, len(items))
			for i, item := range items {
				s, err := normalize(TypeString, item, strict)
				if err != nil {
					return nil, fmt.Errorf("item %d: %w", i, err)
				}
				out = append(out, s.(string))
			}
			return out, nil
		}
	default:
		return nil, fmt.Errorf("unknown type %q", t)
	}
	return nil, fmt.Errorf("expected %s, got %T", t, v)
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case float64:
		if x == math.Trunc(x) && x >= math.MinInt64 && x < math.MaxInt64 {
			return int(x), true
		}
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n), true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}

func asList(v any, strict bool) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		return x, true
	case []int:
		out := make([]any, len(x))
		for i := range x {
			out[i] = x[i]
		}
		return out, true
	case []int64:
		out := make([]any, len(x))
		for i := range x {
			out[i] = x[i]
		}
		return out, true
	case []string:
		out := make([]any, len(x))
		for i := range x {
			out[i] = x[i]
		}
		return out, true
	}
	if strict {
		return nil, false
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return []any{}, true
		}
		parts := strings.Split(s, ",")
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = strings.TrimSpace(p)
		}
		return out, true
	}
	switch v.(type) {
	case int, int64, float64, json.Number, bool:
		return []any{v}, true
	}
	return nil, false
}
