package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/BasharSaadi/RA-Query-Processor/relation"
)

// Output formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

// Formats lists the formats Write accepts.
var Formats = []string{FormatText, FormatTable, FormatJSON}

// Separator underlines each query heading in a report.
var Separator = strings.Repeat("=", 40)

// Write renders r in the given format.
func Write(w io.Writer, format, name string, r *relation.Relation) error {
	switch format {
	case FormatText:
		return Text(w, name, r)
	case FormatTable:
		return Table(w, r)
	case FormatJSON:
		return JSON(w, name, r)
	default:
		return fmt.Errorf("unknown format %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// Text writes r as a block:
//
//	Name = {a, b
//	  "text", 1
//	}
//
// or `Name = {} (empty result)` when r has no tuples.
func Text(w io.Writer, name string, r *relation.Relation) error {
	if r == nil || r.Empty() {
		_, err := fmt.Fprintf(w, "%s = {} (empty result)\n", name)
		return err
	}

	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString(" = {")
	sb.WriteString(strings.Join(r.Attributes, ", "))
	sb.WriteString("\n")
	for _, t := range r.Tuples {
		sb.WriteString("  ")
		sb.WriteString(quotedTuple(t))
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func quotedTuple(t relation.Tuple) string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = v.Quoted()
	}
	return strings.Join(parts, ", ")
}

// Table writes r as an ASCII table with one row per tuple.
func Table(w io.Writer, r *relation.Relation) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(r.Attributes)
	for _, t := range r.Tuples {
		row := make([]string, len(t))
		for i, v := range t {
			row[i] = v.String()
		}
		table.Append(row)
	}
	table.Render()
	if r.Empty() {
		_, err := fmt.Fprintln(w, "(empty result)")
		return err
	}
	return nil
}

// JSONRelation is the JSON shape of a relation. Integers encode as JSON
// numbers and text as JSON strings.
type JSONRelation struct {
	Name       string   `json:"name,omitempty"`
	Attributes []string `json:"attributes"`
	Tuples     [][]any  `json:"tuples"`
}

// ToJSON converts r into its JSON shape.
func ToJSON(name string, r *relation.Relation) JSONRelation {
	out := JSONRelation{Name: name, Attributes: r.Attributes, Tuples: make([][]any, len(r.Tuples))}
	if out.Attributes == nil {
		out.Attributes = []string{}
	}
	for i, t := range r.Tuples {
		row := make([]any, len(t))
		for j, v := range t {
			if v.IsText() {
				row[j] = v.Str
			} else {
				row[j] = v.Int
			}
		}
		out.Tuples[i] = row
	}
	return out
}

// JSON writes r as a single JSON object followed by a newline.
func JSON(w io.Writer, name string, r *relation.Relation) error {
	return json.NewEncoder(w).Encode(ToJSON(name, r))
}

// Report writes one numbered query section: heading, separator, the result
// block (or the error) and a blank line.
func Report(w io.Writer, n int, query string, r *relation.Relation, err error) error {
	if _, werr := fmt.Fprintf(w, "Query %d: %s\n%s\n", n, query, Separator); werr != nil {
		return werr
	}
	if err != nil {
		if _, werr := fmt.Fprintf(w, "Error: Could not execute query '%s': %v\n", query, err); werr != nil {
			return werr
		}
	} else if werr := Text(w, "Result", r); werr != nil {
		return werr
	}
	_, werr := fmt.Fprintln(w)
	return werr
}
