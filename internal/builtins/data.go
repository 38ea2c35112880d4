package builtins

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/rush/internal/value"
)

func dataBuiltins() []*value.Function {
	return []*value.Function{
		builtin("uuid", [][]string{{}}, func(_ value.Caller, _ []value.Value) (value.Value, error) {
			return value.String(uuid.NewString()), nil
		}),
		builtin("json", [][]string{{tStr}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return DecodeJSON([]byte(str(args[0])))
		}),
		builtin("yaml", [][]string{{tStr}}, func(_ value.Caller, args []value.Value) (value.Value, error) {
			return DecodeYAML([]byte(str(args[0])))
		}),
	}
}

// DecodeJSON parses one JSON document. Objects keep their key order and
// numbers without a fraction or exponent become integers.
func DecodeJSON(data []byte) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, value.Errorf(value.ReasonGeneric, "invalid JSON: %v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, value.Errorf(value.ReasonGeneric, "invalid JSON: trailing data")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			arr := value.Array{}
			for dec.More() {
				el, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, el)
			}
			_, err := dec.Token()
			return arr, err
		case '{':
			obj := value.NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.New("object key is not a string")
				}
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, v)
			}
			_, err := dec.Token()
			return obj, err
		}
		return nil, errors.New("unexpected delimiter " + t.String())
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return value.Integer(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return value.Float(f), nil
	case string:
		return value.String(t), nil
	case bool:
		return value.Boolean(t), nil
	case nil:
		return value.Nil, nil
	}
	return nil, errors.New("unexpected JSON token")
}

// DecodeYAML parses one YAML document, keeping mapping key order.
func DecodeYAML(data []byte) (value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, value.Errorf(value.ReasonGeneric, "invalid YAML: %v", err)
	}
	v, err := fromYAML(&doc)
	if err != nil {
		return nil, value.Errorf(value.ReasonGeneric, "invalid YAML: %v", err)
	}
	return v, nil
}

func fromYAML(n *yaml.Node) (value.Value, error) {
	switch n.Kind {
	case 0:
		return value.Nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Nil, nil
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.SequenceNode:
		arr := make(value.Array, 0, len(n.Content))
		for _, c := range n.Content {
			el, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, el)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := value.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, errors.New("mapping key is not a scalar")
			}
			field, err := fromYAML(v)
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, field)
		}
		return obj, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return value.Nil, nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, err
			}
			return value.Boolean(b), nil
		case "!!int":
			var i int64
			if err := n.Decode(&i); err != nil {
				return nil, err
			}
			return value.Integer(i), nil
		case "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return nil, err
			}
			return value.Float(f), nil
		}
		return value.String(n.Value), nil
	}
	return nil, errors.New("unsupported YAML node")
}
