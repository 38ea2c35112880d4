package driver

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/rush/internal/value"
)

// emitter serializes results in one output format.
type emitter interface {
	Emit(v value.Value) error
	Close() error
}

func newEmitter(format Format, w io.Writer) emitter {
	switch format {
	case FormatJSON:
		return &jsonEmitter{w: w}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return &yamlEmitter{enc: enc}
	}
	return &textEmitter{w: w}
}

// textEmitter writes one result per line. Arrays put each element on a
// line of its own and objects are written as JSON.
type textEmitter struct{ w io.Writer }

func (e *textEmitter) Emit(v value.Value) error {
	_, err := fmt.Fprintln(e.w, value.Display(v))
	return err
}

func (e *textEmitter) Close() error { return nil }

// jsonEmitter writes one JSON document per line.
type jsonEmitter struct{ w io.Writer }

func (e *jsonEmitter) Emit(v value.Value) error {
	data, err := value.MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	_, err = fmt.Fprintf(e.w, "%s\n", data)
	return err
}

func (e *jsonEmitter) Close() error { return nil }

// yamlEmitter writes a YAML stream with one document per result.
type yamlEmitter struct{ enc *yaml.Encoder }

func (e *yamlEmitter) Emit(v value.Value) error {
	if err := e.enc.Encode(EncodeYAML(v)); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return nil
}

func (e *yamlEmitter) Close() error { return e.enc.Close() }

// EncodeYAML converts v to a YAML node. Objects keep their key order.
func EncodeYAML(v value.Value) *yaml.Node {
	switch v := v.(type) {
	case value.Empty:
		return scalarNode("!!null", "null")
	case value.Boolean:
		return scalarNode("!!bool", strconv.FormatBool(bool(v)))
	case value.Integer:
		return scalarNode("!!int", v.Inspect())
	case value.Float:
		return scalarNode("!!float", yamlFloat(float64(v)))
	case value.Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, el := range v {
			n.Content = append(n.Content, EncodeYAML(el))
		}
		return n
	case *value.Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.Keys() {
			field, _ := v.Get(k)
			n.Content = append(n.Content, scalarNode("!!str", k), EncodeYAML(field))
		}
		return n
	case value.String:
		return scalarNode("!!str", string(v))
	case *value.Function:
		return scalarNode("!!str", v.Inspect())
	}
	return scalarNode("!!str", value.Display(v))
}

func scalarNode(tag, text string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	return value.Float(f).Inspect()
}
