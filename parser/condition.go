package parser

import (
	"strconv"
	"strings"

	"github.com/BasharSaadi/RA-Query-Processor/ast"
	"github.com/BasharSaadi/RA-Query-Processor/relation"
)

// ParseCondition splits "attribute op literal". Operators are tried longest
// first; an operator is used only when it splits the text into exactly two
// parts. Text without a usable operator gives a condition that never matches.
func ParseCondition(text string) ast.Condition {
	text = strings.TrimSpace(text)
	for _, op := range ast.Operators {
		if !strings.Contains(text, op) {
			continue
		}
		parts := strings.Split(text, op)
		if len(parts) != 2 {
			continue
		}
		return ast.Condition{
			Attribute: strings.TrimSpace(parts[0]),
			Op:        op,
			Literal:   parseLiteral(strings.TrimSpace(parts[1])),
			Text:      text,
		}
	}
	return ast.Condition{Text: text}
}

// parseLiteral reads an integer, or else text with one matching pair of quotes
// removed. A quoted number ("5") stays text.
func parseLiteral(s string) relation.Value {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return relation.Int(v)
	}
	return relation.Text(relation.Unquote(s))
}
