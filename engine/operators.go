package engine

import (
	"github.com/BasharSaadi/RA-Query-Processor/ast"
	"github.com/BasharSaadi/RA-Query-Processor/relation"
)

// The operators below never modify their inputs and always return a new,
// anonymous relation whose tuples share no storage with the inputs.

// Select keeps the tuples of r that satisfy cond, in their original order.
func Select(cond ast.Condition, r *relation.Relation) *relation.Relation {
	result := relation.Anonymous(cloneAttrs(r.Attributes))
	for _, t := range r.Tuples {
		if EvalCondition(cond, r, t) {
			result.Add(t.Clone())
		}
	}
	return result
}

// Project keeps the requested attributes of r. Attributes r does not have
// are dropped from the result schema, and a repeated attribute is kept once.
// Duplicate result tuples are removed, keeping the first occurrence.
func Project(attrs []string, r *relation.Relation) *relation.Relation {
	var cols []string
	var indices []int
	picked := make(map[string]bool)
	for _, a := range attrs {
		idx := r.Index(a)
		if idx < 0 || picked[a] {
			continue
		}
		picked[a] = true
		cols = append(cols, a)
		indices = append(indices, idx)
	}

	result := relation.Anonymous(cols)
	seen := make(map[string]bool)
	for _, t := range r.Tuples {
		vals := make(relation.Tuple, len(indices))
		for i, idx := range indices {
			vals[i] = t[idx]
		}
		key := vals.Key()
		if !seen[key] {
			seen[key] = true
			result.Add(vals)
		}
	}
	return result
}

// Join is the natural join of a and b: tuples are combined wherever every
// attribute name the two share holds equal values. With no shared names this
// is the cartesian product. The result is not deduplicated.
func Join(a, b *relation.Relation) *relation.Relation {
	type pair struct{ left, right int }
	var shared []pair
	var extra []int // positions in b of attributes a does not have

	cols := cloneAttrs(a.Attributes)
	for j, attr := range b.Attributes {
		if i := a.Index(attr); i >= 0 {
			shared = append(shared, pair{i, j})
		} else {
			extra = append(extra, j)
			cols = append(cols, attr)
		}
	}

	result := relation.Anonymous(cols)
	for _, ta := range a.Tuples {
		for _, tb := range b.Tuples {
			match := true
			for _, p := range shared {
				if !relation.Equal(ta[p.left], tb[p.right]) {
					match = false
					break
				}
			}
			if !match {
				continue
			}
			vals := make(relation.Tuple, 0, len(cols))
			vals = append(vals, ta...)
			for _, j := range extra {
				vals = append(vals, tb[j])
			}
			result.Add(vals)
		}
	}
	return result
}

// Union returns the tuples of a followed by those of b, without duplicates.
func Union(a, b *relation.Relation) (*relation.Relation, error) {
	if !a.SameSchema(b) {
		return nil, relation.NewSchemaMismatchError("union", a.Attributes, b.Attributes)
	}
	result := relation.Anonymous(cloneAttrs(a.Attributes))
	seen := make(map[string]bool)
	for _, src := range []*relation.Relation{a, b} {
		for _, t := range src.Tuples {
			key := t.Key()
			if !seen[key] {
				seen[key] = true
				result.Add(t.Clone())
			}
		}
	}
	return result, nil
}

// Intersection returns the tuples of a that also appear in b, without
// duplicates, in a's order.
func Intersection(a, b *relation.Relation) (*relation.Relation, error) {
	if !a.SameSchema(b) {
		return nil, relation.NewSchemaMismatchError("intersection", a.Attributes, b.Attributes)
	}
	return filterMembers(a, b, true), nil
}

// Difference returns the tuples of a that do not appear in b, without
// duplicates, in a's order.
func Difference(a, b *relation.Relation) (*relation.Relation, error) {
	if !a.SameSchema(b) {
		return nil, relation.NewSchemaMismatchError("difference", a.Attributes, b.Attributes)
	}
	return filterMembers(a, b, false), nil
}

func filterMembers(a, b *relation.Relation, keep bool) *relation.Relation {
	inB := make(map[string]bool, len(b.Tuples))
	for _, t := range b.Tuples {
		inB[t.Key()] = true
	}

	result := relation.Anonymous(cloneAttrs(a.Attributes))
	seen := make(map[string]bool)
	for _, t := range a.Tuples {
		key := t.Key()
		if inB[key] != keep || seen[key] {
			continue
		}
		seen[key] = true
		result.Add(t.Clone())
	}
	return result
}

func cloneAttrs(attrs []string) []string {
	out := make([]string, len(attrs))
	copy(out, attrs)
	return out
}
