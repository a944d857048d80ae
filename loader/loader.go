package loader

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	goavro "github.com/linkedin/goavro/v2"
	parquet "github.com/parquet-go/parquet-go"

	"github.com/BasharSaadi/RA-Query-Processor/relation"
)

// Supported lists the file extensions Load understands.
var Supported = []string{".csv", ".json", ".jsonl", ".avro", ".parquet"}

// Load reads a data file into a relation named after the file (base name
// without extension).
func Load(filename string) (*relation.Relation, error) {
	base := filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(base))
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return LoadAs(name, filename, ext)
}

// LoadAs reads a data file of the given format (".csv", ".avro", ...) into a
// relation with the given name.
func LoadAs(name, filename, ext string) (*relation.Relation, error) {
	var (
		r   *relation.Relation
		err error
	)
	switch strings.ToLower(ext) {
	case ".csv":
		r, err = loadCSV(filename)
	case ".json":
		r, err = loadJSON(filename)
	case ".jsonl":
		r, err = loadJSONL(filename)
	case ".avro":
		r, err = loadAvro(filename)
	case ".parquet":
		r, err = loadParquet(filename)
	default:
		return nil, fmt.Errorf("unsupported file format %q (supported: %s)", ext, strings.Join(Supported, ", "))
	}
	if err != nil {
		return nil, err
	}
	if err := checkAttributes(name, r.Attributes); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	r.Name = name
	return r, nil
}

// IsSupported reports whether Load can read the file's format.
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, s := range Supported {
		if s == ext {
			return true
		}
	}
	return false
}

func loadCSV(filename string) (*relation.Relation, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header from %s: %w", filename, err)
	}

	attrs := make([]string, len(header))
	for i, h := range header {
		attrs[i] = strings.TrimSpace(h)
	}

	r := relation.Anonymous(attrs)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row: %w", err)
		}

		vals := make(relation.Tuple, len(attrs))
		for i := range attrs {
			if i < len(record) {
				vals[i] = relation.Coerce(strings.TrimSpace(record[i]))
			} else {
				vals[i] = relation.Text("")
			}
		}
		r.Add(vals)
	}

	return r, nil
}

func loadJSON(filename string) (*relation.Relation, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", filename, err)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("cannot parse JSON from %s: %w (expected array of objects)", filename, err)
	}

	return buildFromRecords(records), nil
}

func loadJSONL(filename string) (*relation.Relation, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var records []map[string]interface{}
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec map[string]interface{}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}

	return buildFromRecords(records), nil
}

// buildFromRecords uses the union of all keys, in first-seen order, as the
// schema. Go maps are unordered, so keys within one record are sorted.
func buildFromRecords(records []map[string]interface{}) *relation.Relation {
	seen := make(map[string]bool)
	var attrs []string
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			seen[k] = true
			attrs = append(attrs, k)
		}
	}

	r := relation.Anonymous(attrs)
	for _, rec := range records {
		vals := make(relation.Tuple, len(attrs))
		for i, a := range attrs {
			vals[i] = jsonValue(rec[a])
		}
		r.Add(vals)
	}
	return r
}

func jsonValue(v interface{}) relation.Value {
	switch val := v.(type) {
	case nil:
		return relation.Text("")
	case float64:
		// JSON numbers are float64; keep whole numbers as integers
		if val == float64(int64(val)) {
			return relation.Int(int64(val))
		}
		return relation.Text(strconv.FormatFloat(val, 'g', -1, 64))
	case string:
		return relation.Text(val)
	case bool:
		return relation.Text(strconv.FormatBool(val))
	default:
		// Nested objects/arrays are kept as their JSON text
		b, _ := json.Marshal(val)
		return relation.Text(string(b))
	}
}

func loadAvro(filename string) (*relation.Relation, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()

	ocfr, err := goavro.NewOCFReader(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read Avro OCF from %s: %w", filename, err)
	}

	var schemaDef struct {
		Fields []struct {
			Name string `json:"name"`
		} `json:"fields"`
	}
	if err := json.Unmarshal([]byte(ocfr.Codec().Schema()), &schemaDef); err != nil {
		return nil, fmt.Errorf("cannot parse Avro schema: %w", err)
	}

	attrs := make([]string, len(schemaDef.Fields))
	for i, field := range schemaDef.Fields {
		attrs[i] = field.Name
	}

	r := relation.Anonymous(attrs)
	for ocfr.Scan() {
		datum, err := ocfr.Read()
		if err != nil {
			return nil, fmt.Errorf("error reading Avro record: %w", err)
		}

		rec, ok := datum.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("unexpected Avro record type %T", datum)
		}

		vals := make(relation.Tuple, len(attrs))
		for i, a := range attrs {
			vals[i] = avroValue(rec[a])
		}
		r.Add(vals)
	}

	if err := ocfr.Err(); err != nil {
		return nil, fmt.Errorf("error reading Avro file: %w", err)
	}

	return r, nil
}

func avroValue(v interface{}) relation.Value {
	switch val := v.(type) {
	case nil:
		return relation.Text("")
	case int32:
		return relation.Int(int64(val))
	case int64:
		return relation.Int(val)
	case float32:
		return relation.Text(strconv.FormatFloat(float64(val), 'g', -1, 32))
	case float64:
		return relation.Text(strconv.FormatFloat(val, 'g', -1, 64))
	case string:
		return relation.Text(val)
	case bool:
		return relation.Text(strconv.FormatBool(val))
	case []byte:
		return relation.Text(string(val))
	case map[string]interface{}:
		// Avro unions decode as {"type": value} - extract the value
		for _, inner := range val {
			return avroValue(inner)
		}
		return relation.Text("")
	default:
		return relation.Text(fmt.Sprintf("%v", val))
	}
}

func loadParquet(filename string) (*relation.Relation, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot stat %s: %w", filename, err)
	}
	file, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("cannot read Parquet file %s: %w", filename, err)
	}

	reader := parquet.NewReader(file)
	defer reader.Close()

	fields := reader.Schema().Fields()
	attrs := make([]string, len(fields))
	for i, field := range fields {
		attrs[i] = field.Name()
	}

	r := relation.Anonymous(attrs)
	buf := make([]parquet.Row, 64)
	for {
		n, err := reader.ReadRows(buf)
		for _, row := range buf[:n] {
			vals := make(relation.Tuple, len(attrs))
			for i := range vals {
				vals[i] = relation.Text("")
			}
			for _, v := range row {
				if col := v.Column(); col >= 0 && col < len(vals) {
					vals[col] = parquetValue(v)
				}
			}
			r.Add(vals)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading Parquet rows from %s: %w", filename, err)
		}
	}

	return r, nil
}

func parquetValue(v parquet.Value) relation.Value {
	if v.IsNull() {
		return relation.Text("")
	}
	switch v.Kind() {
	case parquet.Int32:
		return relation.Int(int64(v.Int32()))
	case parquet.Int64:
		return relation.Int(v.Int64())
	case parquet.Boolean:
		return relation.Text(strconv.FormatBool(v.Boolean()))
	case parquet.Float:
		return relation.Text(strconv.FormatFloat(float64(v.Float()), 'g', -1, 32))
	case parquet.Double:
		return relation.Text(strconv.FormatFloat(v.Double(), 'g', -1, 64))
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return relation.Text(string(v.ByteArray()))
	default:
		return relation.Text(v.String())
	}
}
