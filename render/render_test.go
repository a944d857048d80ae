package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BasharSaadi/RA-Query-Processor/relation"
)

func sample() *relation.Relation {
	r := relation.Anonymous([]string{"name", "salary"})
	r.Add(relation.Tuple{relation.Text("Alice"), relation.Int(100)})
	r.Add(relation.Tuple{relation.Text("Bob"), relation.Int(90)})
	return r
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, "Result", sample()))
	assert.Equal(t, "Result = {name, salary\n  \"Alice\", 100\n  \"Bob\", 90\n}\n", buf.String())
}

func TestTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, "Result", relation.Anonymous([]string{"name"})))
	assert.Equal(t, "Result = {} (empty result)\n", buf.String())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, sample()))
	out := buf.String()
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "90")
	assert.NotContains(t, out, "empty result")

	buf.Reset()
	require.NoError(t, Table(&buf, relation.Anonymous([]string{"name"})))
	assert.Contains(t, buf.String(), "(empty result)")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, "Result", sample()))

	var decoded struct {
		Name       string   `json:"name"`
		Attributes []string `json:"attributes"`
		Tuples     [][]any  `json:"tuples"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Result", decoded.Name)
	assert.Equal(t, []string{"name", "salary"}, decoded.Attributes)
	require.Len(t, decoded.Tuples, 2)
	assert.Equal(t, "Alice", decoded.Tuples[0][0])
	assert.Equal(t, float64(100), decoded.Tuples[0][1])
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", "Result", sample())
	assert.ErrorContains(t, err, "unknown format")
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, 1, "project name (R)", sample(), nil))
	require.NoError(t, Report(&buf, 2, "join R Nope", nil, relation.NewNotFoundError("Nope")))

	want := strings.Join([]string{
		"Query 1: project name (R)",
		Separator,
		"Result = {name, salary",
		`  "Alice", 100`,
		`  "Bob", 90`,
		"}",
		"",
		"Query 2: join R Nope",
		Separator,
		"Error: Could not execute query 'join R Nope': RELATION_NOT_FOUND: relation not found (Nope)",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}
