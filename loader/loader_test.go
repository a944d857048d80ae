package loader

import (
	"os"
	"path/filepath"
	"testing"

	goavro "github.com/linkedin/goavro/v2"
	parquet "github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BasharSaadi/RA-Query-Processor/relation"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func column(t *testing.T, r *relation.Relation, attr string) []relation.Value {
	t.Helper()
	idx := r.Index(attr)
	require.GreaterOrEqual(t, idx, 0, "attribute %q missing from %v", attr, r.Attributes)
	out := make([]relation.Value, len(r.Tuples))
	for i, tup := range r.Tuples {
		out[i] = tup[idx]
	}
	return out
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "Orders.csv", "id, item, qty\n1, apple, 3\n2, pear, 2.5\n3\n")

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Orders", r.Name)
	assert.Equal(t, []string{"id", "item", "qty"}, r.Attributes)
	require.Equal(t, 3, r.Len())
	assert.Equal(t, relation.Int(1), r.Tuples[0][0])
	assert.Equal(t, relation.Text("apple"), r.Tuples[0][1])
	assert.Equal(t, relation.Text("2.5"), r.Tuples[1][2])
	assert.Equal(t, relation.Text(""), r.Tuples[2][1])
}

func TestLoadCSVDuplicateHeader(t *testing.T) {
	path := writeFile(t, "Dup.csv", "id, name, id\n1, a, 2\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, relation.IsDefinitionError(err))
	assert.Contains(t, err.Error(), `duplicate attribute "id"`)

	_, err = Load(writeFile(t, "Blank.csv", "id,,name\n1,2,3\n"))
	assert.True(t, relation.IsDefinitionError(err))
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "people.json", `[{"name": "Ann", "age": 31}, {"name": "Ben", "age": 27.5, "admin": true}]`)

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "people", r.Name)
	assert.Equal(t, []string{"age", "name", "admin"}, r.Attributes)
	assert.Equal(t, []relation.Value{relation.Int(31), relation.Text("27.5")}, column(t, r, "age"))
	assert.Equal(t, []relation.Value{relation.Text(""), relation.Text("true")}, column(t, r, "admin"))
}

func TestLoadJSONL(t *testing.T) {
	path := writeFile(t, "events.jsonl", "{\"id\": 1, \"kind\": \"open\"}\n\n{\"id\": 2, \"kind\": \"close\"}\n")

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []relation.Value{relation.Text("open"), relation.Text("close")}, column(t, r, "kind"))

	bad := writeFile(t, "bad.jsonl", "{\"id\": 1}\n{oops\n")
	_, err = Load(bad)
	assert.ErrorContains(t, err, "line 2")
}

func TestLoadAvro(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Staff.avro")
	f, err := os.Create(path)
	require.NoError(t, err)

	w, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W: f,
		Schema: `{"type": "record", "name": "Staff", "fields": [
			{"name": "name", "type": "string"},
			{"name": "level", "type": "int"},
			{"name": "team", "type": ["null", "string"]}
		]}`,
	})
	require.NoError(t, err)
	require.NoError(t, w.Append([]interface{}{
		map[string]interface{}{"name": "Ann", "level": int32(3), "team": goavro.Union("string", "core")},
		map[string]interface{}{"name": "Ben", "level": int32(1), "team": nil},
	}))
	require.NoError(t, f.Close())

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Staff", r.Name)
	assert.Equal(t, []string{"name", "level", "team"}, r.Attributes)
	assert.Equal(t, relation.Tuple{relation.Text("Ann"), relation.Int(3), relation.Text("core")}, r.Tuples[0])
	assert.Equal(t, relation.Tuple{relation.Text("Ben"), relation.Int(1), relation.Text("")}, r.Tuples[1])
}

type parquetRow struct {
	Name  string `parquet:"name"`
	Floor int32  `parquet:"floor"`
}

func TestLoadParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Depts.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := parquet.NewWriter(f)
	for _, row := range []parquetRow{{"Eng", 3}, {"Sales", 1}} {
		require.NoError(t, w.Write(row))
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Depts", r.Name)
	assert.ElementsMatch(t, []string{"name", "floor"}, r.Attributes)
	assert.Equal(t, []relation.Value{relation.Text("Eng"), relation.Text("Sales")}, column(t, r, "name"))
	assert.Equal(t, []relation.Value{relation.Int(3), relation.Int(1)}, column(t, r, "floor"))
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load("data.xlsx")
	assert.ErrorContains(t, err, "unsupported file format")
	assert.False(t, IsSupported("data.xlsx"))
	assert.True(t, IsSupported("DATA.CSV"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "cannot open")
}
