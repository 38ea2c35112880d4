package value

import (
	"strconv"
	"strings"

	"github.com/funvibe/rush/internal/config"
)

// Parse infers a value from text: the boolean literals, then integers,
// then decimal floats; anything else is a String.
func Parse(text string) Value {
	switch text {
	case config.TrueLiteral:
		return Boolean(true)
	case config.FalseLiteral:
		return Boolean(false)
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Integer(i)
	}
	if looksDecimal(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return Float(f)
		}
	}
	return String(text)
}

// looksDecimal keeps words like "inf" or "NaN" from parsing as floats.
func looksDecimal(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune("+-.eE", r):
		default:
			return false
		}
	}
	return digits > 0
}

// Truthy coerces v to a boolean.
func Truthy(v Value) (bool, error) {
	switch v := v.(type) {
	case Empty:
		return false, nil
	case Boolean:
		return bool(v), nil
	case Integer:
		return v != 0, nil
	case Float:
		return v != 0, nil
	case String:
		switch string(v) {
		case config.TrueLiteral:
			return true, nil
		case config.FalseLiteral:
			return false, nil
		}
		return v != "", nil
	case Array:
		return len(v) > 0, nil
	case *Object:
		return v.Len() > 0, nil
	}
	return false, Invalid("bool", v)
}

// Display renders v as output text. Arrays put one element per line.
func Display(v Value) string {
	switch v := v.(type) {
	case Empty:
		return ""
	case String:
		return string(v)
	case Symbol:
		return string(v)
	case *Regex:
		return v.Source()
	case Array:
		lines := make([]string, len(v))
		for i, elem := range v {
			lines[i] = Display(elem)
		}
		return strings.Join(lines, "\n")
	case *Object:
		data, err := MarshalJSON(v)
		if err != nil {
			return v.Inspect()
		}
		return string(data)
	}
	return v.Inspect()
}

// Native converts v to plain Go values: nil, bool, int64, float64,
// string, []interface{} and *NativeObject. Functions are rendered by name.
func Native(v Value) interface{} {
	switch v := v.(type) {
	case Empty:
		return nil
	case Boolean:
		return bool(v)
	case Integer:
		return int64(v)
	case Float:
		return float64(v)
	case String:
		return string(v)
	case Symbol:
		return string(v)
	case *Regex:
		return v.Source()
	case Array:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = Native(elem)
		}
		return out
	case *Object:
		obj := &NativeObject{Values: make(map[string]interface{}, v.Len())}
		for _, k := range v.keys {
			obj.Keys = append(obj.Keys, k)
			obj.Values[k] = Native(v.fields[k])
		}
		return obj
	}
	return v.Inspect()
}
