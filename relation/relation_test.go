package relation

import (
	"fmt"
	"testing"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"42", Int(42)},
		{"-7", Int(-7)},
		{"+3", Int(3)},
		{"Eng", Text("Eng")},
		{"3.5", Text("3.5")},
		{"", Text("")},
	}
	for _, tt := range tests {
		got := Coerce(tt.in)
		if !Equal(got, tt.want) {
			t.Errorf("Coerce(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := map[string]string{
		`"Alice"`:   "Alice",
		`'Bob'`:     "Bob",
		`""x""`:     `"x"`,
		`Carol`:     "Carol",
		`"`:         `"`,
		`"unclosed`: `"unclosed`,
		`'Bob"`:     `'Bob"`,
		`Rock 'n'`:  `Rock 'n'`,
		`O'Brien`:   `O'Brien`,
		`''`:        "",
	}
	for in, want := range tests {
		if got := Unquote(in); got != want {
			t.Errorf("Unquote(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCompareSameKind(t *testing.T) {
	if Compare(Int(1), Int(2)) >= 0 {
		t.Error("expected 1 < 2")
	}
	if Compare(Int(10), Int(9)) <= 0 {
		t.Error("expected 10 > 9")
	}
	if Compare(Text("abc"), Text("abd")) >= 0 {
		t.Error("expected abc < abd")
	}
	if Compare(Text("x"), Text("x")) != 0 {
		t.Error("expected x == x")
	}
}

func TestCompareMixedKinds(t *testing.T) {
	// Every integer sorts before every text, regardless of content.
	if Compare(Int(1000), Text("1")) >= 0 {
		t.Error("expected integer < text")
	}
	if Compare(Text(""), Int(-5)) <= 0 {
		t.Error("expected text > integer")
	}
	if Equal(Int(5), Text("5")) {
		t.Error("Int(5) must not equal Text(\"5\")")
	}
}

func TestTextNormalization(t *testing.T) {
	// "é" precomposed vs "e" + combining acute accent
	if !Equal(Text("caf\u00e9"), Text("cafe\u0301")) {
		t.Error("expected NFC-equivalent texts to be equal")
	}
}

func TestTupleKeyDistinguishesKinds(t *testing.T) {
	a := Tuple{Int(5), Text("x")}
	b := Tuple{Text("5"), Text("x")}
	if a.Key() == b.Key() {
		t.Errorf("keys collide: %q", a.Key())
	}
	c := Tuple{Text("a\x00"), Text("b")}
	d := Tuple{Text("a"), Text("\x00b")}
	if c.Key() == d.Key() {
		t.Error("keys collide on embedded separators")
	}
	if a.Key() != (Tuple{Int(5), Text("x")}).Key() {
		t.Error("equal tuples must have equal keys")
	}
}

func TestRelationIndexAndSchema(t *testing.T) {
	r := New("R", []string{"a", "b"})
	r.Add(Tuple{Int(1), Text("x")})
	if r.Index("b") != 1 || r.Index("zzz") != -1 {
		t.Errorf("unexpected index results")
	}
	if r.Len() != 1 || r.Empty() {
		t.Errorf("expected one tuple")
	}

	same := Anonymous([]string{"a", "b"})
	swapped := Anonymous([]string{"b", "a"})
	if !r.SameSchema(same) {
		t.Error("expected same schema")
	}
	if r.SameSchema(swapped) {
		t.Error("attribute order must matter")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := New("R", []string{"a"})
	r.Add(Tuple{Int(1)})
	c := r.Clone()
	c.Tuples[0][0] = Int(2)
	c.Attributes[0] = "z"
	if r.Tuples[0][0].Int != 1 || r.Attributes[0] != "a" {
		t.Error("clone shares structure with original")
	}
}

func TestStore(t *testing.T) {
	s := NewStore()
	s.Put(New("B", []string{"x"}))
	s.Put(New("A", []string{"x"}))
	s.Put(New("B", []string{"y"}))

	if s.Len() != 2 {
		t.Fatalf("expected 2 relations, got %d", s.Len())
	}
	b, ok := s.Get("B")
	if !ok || b.Attributes[0] != "y" {
		t.Errorf("expected last definition of B to win")
	}
	if fmt.Sprint(s.Names()) != "[A B]" {
		t.Errorf("expected sorted names, got %v", s.Names())
	}

	_, err := s.Lookup("Nope")
	if !IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}

	s.Delete("A")
	if s.Has("A") {
		t.Error("expected A to be deleted")
	}
}

func TestErrorHelpers(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewSchemaMismatchError("union", []string{"a"}, []string{"b"}))
	if !IsSchemaMismatch(err) {
		t.Error("expected wrapped schema mismatch to match")
	}
	if IsNotFound(err) || IsUnrecognizedQuery(err) || IsDefinitionError(err) {
		t.Error("error matched the wrong code")
	}
	if got := NewNotFoundError("Nope").Error(); got != "RELATION_NOT_FOUND: relation not found (Nope)" {
		t.Errorf("unexpected message %q", got)
	}
}
