// Command gen writes sample integer streams for trying the -input flag of
// chainsimp: testdata/sample.parquet and testdata/sample.avro, both holding
// the readings -5..15 in a column named "reading". Run it from the module
// root, then e.g. chainsimp -input testdata/sample.avro -column reading '<chain>'.
package main

import (
	"log"
	"os"

	goavro "github.com/linkedin/goavro/v2"
	parquet "github.com/parquet-go/parquet-go"
)

type Sample struct {
	ID      int32 `parquet:"id"`
	Reading int64 `parquet:"reading"`
}

const avroSchema = `{
	"type": "record",
	"name": "Sample",
	"fields": [
		{"name": "id", "type": "int"},
		{"name": "reading", "type": "long"}
	]
}`

func samples() []Sample {
	var out []Sample
	for v := int64(-5); v <= 15; v++ {
		out = append(out, Sample{ID: int32(len(out) + 1), Reading: v})
	}
	return out
}

func main() {
	rows := samples()
	if err := writeParquet("testdata/sample.parquet", rows); err != nil {
		log.Fatal(err)
	}
	if err := writeAvro("testdata/sample.avro", rows); err != nil {
		log.Fatal(err)
	}
}

func writeParquet(path string, rows []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := parquet.NewWriter(f)
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return w.Close()
}

func writeAvro(path string, rows []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := goavro.NewOCFWriter(goavro.OCFConfig{W: f, Schema: avroSchema})
	if err != nil {
		return err
	}
	records := make([]interface{}, len(rows))
	for i, r := range rows {
		records[i] = map[string]interface{}{"id": r.ID, "reading": r.Reading}
	}
	return w.Append(records)
}
