package value

import (
	"bytes"
	"encoding/json"
)

// NativeObject is the plain Go form of an Object. It keeps key order
// when marshalled to JSON.
type NativeObject struct {
	Keys   []string
	Values map[string]interface{}
}

func (o *NativeObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(o.Values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes v as JSON, keeping object key order.
func MarshalJSON(v Value) ([]byte, error) {
	return json.Marshal(Native(v))
}
