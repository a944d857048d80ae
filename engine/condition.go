package engine

import (
	"github.com/BasharSaadi/RA-Query-Processor/ast"
	"github.com/BasharSaadi/RA-Query-Processor/relation"
)

// EvalCondition evaluates cond against one tuple of r. A condition without an
// operator, or one naming an attribute r does not have, is false.
func EvalCondition(cond ast.Condition, r *relation.Relation, t relation.Tuple) bool {
	if !cond.Valid() {
		return false
	}
	idx := r.Index(cond.Attribute)
	if idx < 0 {
		return false
	}
	return cmpResult(cond.Op, relation.Compare(t[idx], cond.Literal))
}

func cmpResult(op string, cmp int) bool {
	switch op {
	case "=":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case ">":
		return cmp > 0
	case "<=":
		return cmp <= 0
	case ">=":
		return cmp >= 0
	}
	return false
}
