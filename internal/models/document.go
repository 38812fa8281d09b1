package models

// FieldID is the document field that carries its identity
const FieldID = "id"

// Document is an application-defined record. The only field the engine relies
// on is "id", stable across local and remote representations.
type Document map[string]any

// ID returns the document id or an empty string when it is missing or not a string.
func (d Document) ID() string {
	id, _ := d[FieldID].(string)
	return id
}

// Clone создает глубокую копию документа
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge returns a new document with every top-level field of partial written
// over a copy of d. The receiver is not modified.
func (d Document) Merge(partial Document) Document {
	out := d.Clone()
	if out == nil {
		out = make(Document, len(partial))
	}
	for k, v := range partial {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return map[string]any(Document(val).Clone())
	case Document:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
