// Command gen writes the sample data files under testdata/:
// Employees.parquet and Depts.avro. Run it from the repository root.
package main

import (
	"log"
	"os"

	goavro "github.com/linkedin/goavro/v2"
	parquet "github.com/parquet-go/parquet-go"
)

type Employee struct {
	Name   string `parquet:"name"`
	Dept   string `parquet:"dept"`
	Salary int64  `parquet:"salary"`
}

const deptSchema = `{
	"type": "record",
	"name": "Dept",
	"fields": [
		{"name": "dept", "type": "string"},
		{"name": "floor", "type": "int"},
		{"name": "manager", "type": ["null", "string"]}
	]
}`

func main() {
	if err := writeEmployees("testdata/Employees.parquet"); err != nil {
		log.Fatal(err)
	}
	if err := writeDepts("testdata/Depts.avro"); err != nil {
		log.Fatal(err)
	}
}

func writeEmployees(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := parquet.NewWriter(f)

	employees := []Employee{
		{"Alice", "Eng", 100},
		{"Bob", "Eng", 90},
		{"Carol", "Sales", 80},
		{"Dan", "HR", 75},
		{"Eve", "Sales", 95},
	}

	for _, e := range employees {
		if err := w.Write(e); err != nil {
			return err
		}
	}

	return w.Close()
}

func writeDepts(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := goavro.NewOCFWriter(goavro.OCFConfig{W: f, Schema: deptSchema})
	if err != nil {
		return err
	}

	return w.Append([]interface{}{
		map[string]interface{}{"dept": "Eng", "floor": int32(3), "manager": goavro.Union("string", "Alice")},
		map[string]interface{}{"dept": "Sales", "floor": int32(1), "manager": goavro.Union("string", "Eve")},
		map[string]interface{}{"dept": "HR", "floor": int32(2), "manager": nil},
	})
}
