package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref points at another record. The catalog API sends references either as a
// bare identifier or as the embedded document; both decode into a Ref.
type Ref struct {
	id  string
	doc json.RawMessage
}

// NewRef returns a reference holding only an identifier.
func NewRef(id string) Ref {
	return Ref{id: id}
}

// ID returns the referenced identifier, whichever form the reference arrived in.
func (r Ref) ID() string {
	return r.id
}

// IsZero reports whether the reference is empty.
func (r Ref) IsZero() bool {
	return r.id == ""
}

// Embedded reports whether the reference arrived as a full document.
func (r Ref) Embedded() bool {
	return len(r.doc) > 0
}

// Decode unmarshals the embedded document into v. It returns false when the
// reference is a bare identifier or the document does not fit v.
func (r Ref) Decode(v any) bool {
	if !r.Embedded() {
		return false
	}
	return json.Unmarshal(r.doc, v) == nil
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*r = Ref{}
		return nil
	case data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{id: id}
		return nil
	case data[0] == '{':
		var head struct {
			ID string `json:"_id"`
		}
		if err := json.Unmarshal(data, &head); err != nil {
			return err
		}
		doc := make(json.RawMessage, len(data))
		copy(doc, data)
		*r = Ref{id: head.ID, doc: doc}
		return nil
	default:
		return fmt.Errorf("reference must be a string or an object, got %s", data)
	}
}

// MarshalJSON writes the plain identifier; request bodies never embed documents.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

// RefList is a set of references. Order carries no meaning.
type RefList []Ref

// IDs returns the identifiers of all references.
func (l RefList) IDs() []string {
	ids := make([]string, 0, len(l))
	for _, ref := range l {
		if !ref.IsZero() {
			ids = append(ids, ref.ID())
		}
	}
	return ids
}

// Contains tests membership by identifier equality.
func (l RefList) Contains(id string) bool {
	for _, ref := range l {
		if ref.ID() == id {
			return true
		}
	}
	return false
}
