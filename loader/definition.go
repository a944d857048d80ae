package loader

import (
	"regexp"
	"strings"

	"github.com/BasharSaadi/RA-Query-Processor/relation"
)

// headerPattern matches `Name (a, b, ...) = {`.
// Names may use any Unicode letter or digit.
var headerPattern = regexp.MustCompile(`([\p{L}\p{N}_]+)\s*\(([^)]+)\)\s*=\s*\{`)

// ParseDefinition parses one block of the form
//
//	Name (attr, attr, ...) = {
//	  value, value, ...
//	}
//
// Values are comma separated, one tuple per line; lines starting with '#'
// are comments. Each value loses surrounding whitespace and one matching
// pair of quotes, then becomes an Integer if it parses as one and Text otherwise.
// A malformed block returns a DEFINITION_PARSE_ERROR and no relation.
func ParseDefinition(text string) (*relation.Relation, error) {
	loc := headerPattern.FindStringSubmatchIndex(text)
	if loc == nil || strings.TrimSpace(text[:loc[0]]) != "" {
		return nil, relation.NewDefinitionError(firstLine(text), "expected header `Name (attr, ...) = {`")
	}
	name := text[loc[2]:loc[3]]

	var attrs []string
	for _, a := range strings.Split(text[loc[4]:loc[5]], ",") {
		attrs = append(attrs, strings.TrimSpace(a))
	}
	if err := checkAttributes(name, attrs); err != nil {
		return nil, err
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if end < start {
		return nil, relation.NewDefinitionError(name, "missing closing '}'")
	}

	r := relation.New(name, attrs)
	for n, line := range strings.Split(text[start+1:end], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != len(attrs) {
			return nil, relation.NewDefinitionError(name,
				"tuple on body line %d has %d values, want %d", n+1, len(fields), len(attrs))
		}
		vals := make(relation.Tuple, len(fields))
		for i, f := range fields {
			vals[i] = relation.Coerce(relation.Unquote(strings.TrimSpace(f)))
		}
		r.Add(vals)
	}
	return r, nil
}

// ParseDocument finds every definition block in doc and stores each one
// that parses, later definitions replacing earlier ones of the same name.
// A block runs from its header to the next header (or the end of doc).
// Blocks that fail are skipped and reported in the returned slice.
func ParseDocument(doc string, store *relation.Store) (loaded []string, failed []error) {
	matches := headerPattern.FindAllStringIndex(doc, -1)
	for i, m := range matches {
		end := len(doc)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		r, err := ParseDefinition(doc[m[0]:end])
		if err != nil {
			failed = append(failed, err)
			continue
		}
		store.Put(r)
		loaded = append(loaded, r.Name)
	}
	return loaded, failed
}

// checkAttributes rejects a schema with an empty or repeated attribute name.
func checkAttributes(name string, attrs []string) error {
	seen := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		if a == "" {
			return relation.NewDefinitionError(name, "empty attribute name")
		}
		if seen[a] {
			return relation.NewDefinitionError(name, "duplicate attribute %q", a)
		}
		seen[a] = true
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
