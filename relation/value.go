package relation

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind is the type tag of a Value.
type Kind int

const (
	KindInt Kind = iota
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindText:
		return "text"
	default:
		return "?"
	}
}

// Value is a single cell: either an integer or a piece of text.
type Value struct {
	Kind Kind
	Int  int64
	Str  string
}

// Int creates an integer value.
func Int(v int64) Value {
	return Value{Kind: KindInt, Int: v}
}

// Text creates a text value. The text is normalized to NFC so that
// equal-looking strings compare equal.
func Text(v string) Value {
	return Value{Kind: KindText, Str: norm.NFC.String(v)}
}

// Coerce turns a literal into an Integer when it parses as one, otherwise
// into Text.
func Coerce(s string) Value {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(v)
	}
	return Text(s)
}

// Unquote strips one matching pair of surrounding quotes ("..." or '...').
// Anything else, including a lone or mismatched quote, is returned as-is.
func Unquote(s string) string {
	if n := len(s); n >= 2 && (s[0] == '"' || s[0] == '\'') && s[n-1] == s[0] {
		return s[1 : n-1]
	}
	return s
}

// IsText reports whether v holds text.
func (v Value) IsText() bool {
	return v.Kind == KindText
}

// String returns the bare representation of the value.
func (v Value) String() string {
	if v.Kind == KindInt {
		return strconv.FormatInt(v.Int, 10)
	}
	return v.Str
}

// Quoted renders text values in double quotes and integers as-is.
func (v Value) Quoted() string {
	if v.Kind == KindText {
		return `"` + v.Str + `"`
	}
	return v.String()
}

// Compare orders two values. Values of different kinds are ordered by kind
// (every integer sorts before every text); values of the same kind are
// ordered numerically or bytewise.
func Compare(a, b Value) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	if a.Kind == KindInt {
		switch {
		case a.Int < b.Int:
			return -1
		case a.Int > b.Int:
			return 1
		}
		return 0
	}
	return strings.Compare(a.Str, b.Str)
}

// Equal reports whether a and b have the same kind and value.
func Equal(a, b Value) bool {
	return a.Kind == b.Kind && a.Int == b.Int && a.Str == b.Str
}

// key writes a kind-tagged encoding so that Int(5) and Text("5") differ.
func (v Value) key(sb *strings.Builder) {
	if v.Kind == KindInt {
		sb.WriteByte('i')
		sb.WriteString(strconv.FormatInt(v.Int, 10))
	} else {
		sb.WriteByte('s')
		sb.WriteString(strconv.Itoa(len(v.Str)))
		sb.WriteByte(':')
		sb.WriteString(v.Str)
	}
	sb.WriteByte(0)
}
