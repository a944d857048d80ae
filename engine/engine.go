package engine

import (
	"fmt"

	"github.com/BasharSaadi/RA-Query-Processor/ast"
	"github.com/BasharSaadi/RA-Query-Processor/parser"
	"github.com/BasharSaadi/RA-Query-Processor/relation"
)

// Run parses and evaluates a single query against the store.
func Run(query string, store *relation.Store) (*relation.Relation, error) {
	op, err := parser.Parse(query)
	if err != nil {
		return nil, err
	}
	return Execute(op, store)
}

// Execute evaluates an operation tree bottom-up. Intermediate results are
// passed along as return values, so the store is only read, never written.
func Execute(op ast.Op, store *relation.Store) (*relation.Relation, error) {
	switch o := op.(type) {
	case *ast.RelationRef:
		return store.Lookup(o.Name)
	case *ast.SelectOp:
		input, err := Execute(o.Operand, store)
		if err != nil {
			return nil, err
		}
		return Select(o.Cond, input), nil
	case *ast.ProjectOp:
		input, err := Execute(o.Operand, store)
		if err != nil {
			return nil, err
		}
		return Project(o.Attributes, input), nil
	case *ast.JoinOp:
		a, b, err := lookupPair(o.Left, o.Right, store)
		if err != nil {
			return nil, err
		}
		return Join(a, b), nil
	case *ast.UnionOp:
		a, b, err := lookupPair(o.Left, o.Right, store)
		if err != nil {
			return nil, err
		}
		return Union(a, b)
	case *ast.IntersectOp:
		a, b, err := lookupPair(o.Left, o.Right, store)
		if err != nil {
			return nil, err
		}
		return Intersection(a, b)
	case *ast.DifferenceOp:
		a, b, err := lookupPair(o.Left, o.Right, store)
		if err != nil {
			return nil, err
		}
		return Difference(a, b)
	default:
		return nil, fmt.Errorf("unknown operation type %T", op)
	}
}

func lookupPair(left, right *ast.RelationRef, store *relation.Store) (*relation.Relation, *relation.Relation, error) {
	a, err := store.Lookup(left.Name)
	if err != nil {
		return nil, nil, err
	}
	b, err := store.Lookup(right.Name)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
