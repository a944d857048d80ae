package ast

import (
	"strings"

	"github.com/BasharSaadi/RA-Query-Processor/relation"
)

// Comparison operators accepted in conditions, longest first. A two-character
// operator must be tried before its one-character prefix.
var Operators = []string{">=", "<=", "!=", ">", "<", "="}

// Condition is a single comparison: attribute op literal.
type Condition struct {
	Attribute string
	Op        string // one of Operators; empty when the text had no operator
	Literal   relation.Value
	Text      string // original condition text
}

// Valid reports whether an operator was found. Invalid conditions never match.
func (c Condition) Valid() bool {
	return c.Op != ""
}

func (c Condition) String() string {
	if !c.Valid() {
		return c.Text
	}
	return c.Attribute + c.Op + c.Literal.Quoted()
}

// --- Operations (operation tree nodes) ---

// Op represents a node of the operation tree.
type Op interface {
	opNode()
	String() string
}

// RelationRef names a relation held in the store.
type RelationRef struct {
	Name string
}

func (o *RelationRef) opNode()        {}
func (o *RelationRef) String() string { return o.Name }

// SelectOp keeps the tuples of its operand that satisfy Cond.
type SelectOp struct {
	Cond    Condition
	Operand Op
}

func (o *SelectOp) opNode() {}
func (o *SelectOp) String() string {
	return "select " + o.Cond.String() + " (" + o.Operand.String() + ")"
}

// ProjectOp keeps only the listed attributes of its operand.
type ProjectOp struct {
	Attributes []string
	Operand    Op
}

func (o *ProjectOp) opNode() {}
func (o *ProjectOp) String() string {
	return "project " + strings.Join(o.Attributes, ",") + " (" + o.Operand.String() + ")"
}

// The binary operators only take relation names as operands.

// JoinOp is a natural join.
type JoinOp struct {
	Left, Right *RelationRef
}

func (o *JoinOp) opNode()        {}
func (o *JoinOp) String() string { return "join " + o.Left.Name + " " + o.Right.Name }

// UnionOp is a set union.
type UnionOp struct {
	Left, Right *RelationRef
}

func (o *UnionOp) opNode()        {}
func (o *UnionOp) String() string { return "union " + o.Left.Name + " " + o.Right.Name }

// IntersectOp is a set intersection.
type IntersectOp struct {
	Left, Right *RelationRef
}

func (o *IntersectOp) opNode() {}
func (o *IntersectOp) String() string {
	return "intersection " + o.Left.Name + " " + o.Right.Name
}

// DifferenceOp is the set difference Left - Right.
type DifferenceOp struct {
	Left, Right *RelationRef
}

func (o *DifferenceOp) opNode() {}
func (o *DifferenceOp) String() string {
	return "difference " + o.Left.Name + " " + o.Right.Name
}
