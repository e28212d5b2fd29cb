package ujson

// FromAny converts a generic Go value produced by a foreign decoder
// (encoding/json, encoding/xml, goccy/go-yaml all decode into the same
// bool/float64/string/[]any/map[string]any/nil shape when unmarshalled into
// an `any`) into a Value tree. It is the bridge used by the schema package's
// contentMediaType handling, which hands decoded content to the same
// validator that walks parsed Value trees everywhere else.
//
// Unrecognized concrete types (anything a decoder didn't produce) become
// Invalid, matching the zero Value's role as the parse-failure sentinel.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case float64:
		return Float(t)
	case float32:
		return Float(float64(t))
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case string:
		return String(t)
	case []any:
		arr := newArray()
		for _, elem := range t {
			arr.Append(FromAny(elem))
		}
		return Value{kind: KindArray, arr: arr}
	case map[string]any:
		obj := newObject()
		for k, elem := range t {
			obj.Set(k, FromAny(elem))
		}
		return Value{kind: KindObject, obj: obj}
	default:
		return Value{}
	}
}
