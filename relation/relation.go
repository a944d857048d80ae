package relation

import (
	"strings"
)

// Tuple is a single row, positionally aligned with its relation's attributes.
type Tuple []Value

// Key returns a string that identifies the tuple by value. Two tuples have
// the same key exactly when they are equal element by element.
func (t Tuple) Key() string {
	var sb strings.Builder
	for _, v := range t {
		v.key(&sb)
	}
	return sb.String()
}

// Equal reports whether two tuples hold the same values in the same order.
func (t Tuple) Equal(o Tuple) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if !Equal(t[i], o[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the tuple that shares no storage with t.
func (t Tuple) Clone() Tuple {
	out := make(Tuple, len(t))
	copy(out, t)
	return out
}

// Relation is a schema plus an ordered list of tuples. Relations produced
// while evaluating a query have no name.
type Relation struct {
	Name       string
	Attributes []string
	Tuples     []Tuple
}

// New creates an empty relation with the given attributes.
func New(name string, attributes []string) *Relation {
	return &Relation{
		Name:       name,
		Attributes: attributes,
		Tuples:     nil,
	}
}

// Anonymous creates an empty, unnamed relation.
func Anonymous(attributes []string) *Relation {
	return New("", attributes)
}

// Index returns the position of an attribute, or -1.
func (r *Relation) Index(attr string) int {
	for i, a := range r.Attributes {
		if a == attr {
			return i
		}
	}
	return -1
}

// Add appends a tuple. The caller guarantees its arity matches the schema.
func (r *Relation) Add(t Tuple) {
	r.Tuples = append(r.Tuples, t)
}

// Len returns the number of tuples.
func (r *Relation) Len() int {
	return len(r.Tuples)
}

// Empty reports whether the relation has no tuples.
func (r *Relation) Empty() bool {
	return len(r.Tuples) == 0
}

// SameSchema reports whether both relations have the same attribute names
// in the same order.
func (r *Relation) SameSchema(o *Relation) bool {
	if len(r.Attributes) != len(o.Attributes) {
		return false
	}
	for i := range r.Attributes {
		if r.Attributes[i] != o.Attributes[i] {
			return false
		}
	}
	return true
}

// Clone creates a copy of the relation that shares no storage with r.
func (r *Relation) Clone() *Relation {
	attrs := make([]string, len(r.Attributes))
	copy(attrs, r.Attributes)
	tuples := make([]Tuple, len(r.Tuples))
	for i, t := range r.Tuples {
		tuples[i] = t.Clone()
	}
	return &Relation{Name: r.Name, Attributes: attrs, Tuples: tuples}
}

// String returns a compact representation of the relation.
func (r *Relation) String() string {
	if len(r.Tuples) == 0 {
		return "[" + strings.Join(r.Attributes, ", ") + "] (0 tuples)"
	}

	var sb strings.Builder
	sb.WriteString("[ ")
	for i, t := range r.Tuples {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("{")
		for j, v := range t {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(r.Attributes[j])
			sb.WriteString(":")
			sb.WriteString(v.Quoted())
		}
		sb.WriteString("}")
	}
	sb.WriteString(" ]")
	return sb.String()
}
