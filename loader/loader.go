// Package loader reads integer streams from data files.
package loader

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	goavro "github.com/linkedin/goavro/v2"
	parquet "github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"

	"github.com/razeghi71/chainsimp/stream"
)

// Load reads the integers of one column of a file. The format is chosen by
// extension. An empty column selects the first CSV column, or the only field
// of a record-based file.
func Load(filename, column string) (*stream.Stream, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	var (
		values []int64
		err    error
	)
	switch ext {
	case ".txt":
		values, err = loadText(filename)
	case ".csv":
		values, err = loadCSV(filename, column)
	case ".json":
		values, err = loadJSON(filename, column)
	case ".jsonl":
		values, err = loadJSONL(filename, column)
	case ".avro":
		values, err = loadAvro(filename, column)
	case ".parquet":
		values, err = loadParquet(filename, column)
	default:
		return nil, errors.Errorf("unsupported file format %q (supported: .txt, .csv, .json, .jsonl, .avro, .parquet)", ext)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded stream", "file", filename, "format", ext, "values", len(values))
	return stream.New(name, values...), nil
}

func loadText(filename string) ([]int64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s", filename)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	var values []int64
	for scanner.Scan() {
		v, err := parseInt(scanner.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", len(values)+1)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "error reading %s", filename)
	}
	return values, nil
}

func loadCSV(filename, column string) ([]int64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s", filename)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read CSV header from %s", filename)
	}

	idx := 0
	if column != "" {
		idx = -1
		for i, h := range header {
			if strings.TrimSpace(h) == column {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, errors.Errorf("column %q not found in %s", column, filename)
		}
	}

	var values []int64
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "error reading CSV row")
		}
		if idx >= len(record) {
			return nil, errors.Errorf("row %d has no column %d", row, idx+1)
		}
		v, err := parseInt(strings.TrimSpace(record[idx]))
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", row)
		}
		values = append(values, v)
	}
	return values, nil
}

func parseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Errorf("not an integer: %q", s)
	}
	return v, nil
}

func loadJSON(filename, column string) ([]int64, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", filename)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrapf(err, "cannot parse JSON from %s (expected an array)", filename)
	}

	values := make([]int64, 0, len(items))
	for i, item := range items {
		v, err := jsonInt(item, column)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		values = append(values, v)
	}
	return values, nil
}

func loadJSONL(filename, column string) ([]int64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s", filename)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var values []int64
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := jsonInt([]byte(line), column)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "error reading %s", filename)
	}
	return values, nil
}

// jsonInt decodes a bare integer or the selected field of an object.
func jsonInt(raw []byte, column string) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return parseInt(n.String())
	}

	var rec map[string]json.Number
	if err := json.Unmarshal(raw, &rec); err != nil {
		return 0, errors.Errorf("expected an integer or an object of integers, got %s", raw)
	}
	names := make([]string, 0, len(rec))
	for k := range rec {
		names = append(names, k)
	}
	field, err := pickField(names, column)
	if err != nil {
		return 0, err
	}
	return parseInt(rec[field].String())
}

// pickField resolves column against the available field names.
func pickField(names []string, column string) (string, error) {
	if column == "" {
		if len(names) == 1 {
			return names[0], nil
		}
		return "", errors.Errorf("a column is required to choose among %d fields", len(names))
	}
	for _, n := range names {
		if n == column {
			return column, nil
		}
	}
	return "", errors.Errorf("column %q not found", column)
}

func loadAvro(filename, column string) ([]int64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s", filename)
	}
	defer f.Close()

	ocfr, err := goavro.NewOCFReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read Avro OCF from %s", filename)
	}

	var schemaDef struct {
		Fields []struct {
			Name string `json:"name"`
		} `json:"fields"`
	}
	if err := json.Unmarshal([]byte(ocfr.Codec().Schema()), &schemaDef); err != nil {
		return nil, errors.Wrap(err, "cannot parse Avro schema")
	}
	names := make([]string, len(schemaDef.Fields))
	for i, field := range schemaDef.Fields {
		names[i] = field.Name
	}
	field, err := pickField(names, column)
	if err != nil {
		return nil, errors.Wrap(err, filename)
	}

	var values []int64
	for ocfr.Scan() {
		datum, err := ocfr.Read()
		if err != nil {
			return nil, errors.Wrap(err, "error reading Avro record")
		}
		rec, ok := datum.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("unexpected Avro record type %T", datum)
		}
		v, err := avroInt(rec[field])
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", len(values)+1)
		}
		values = append(values, v)
	}
	if err := ocfr.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading Avro file")
	}
	return values, nil
}

func avroInt(v interface{}) (int64, error) {
	switch val := v.(type) {
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case map[string]interface{}:
		// Avro unions decode as {"type": value}.
		for _, inner := range val {
			return avroInt(inner)
		}
	}
	return 0, errors.Errorf("expected an Avro int or long, got %T", v)
}

func loadParquet(filename, column string) ([]int64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s", filename)
	}
	defer f.Close()

	reader := parquet.NewReader(f)
	defer reader.Close()

	schema := reader.Schema()
	var names []string
	for _, path := range schema.Columns() {
		names = append(names, strings.Join(path, "."))
	}
	field, err := pickField(names, column)
	if err != nil {
		return nil, errors.Wrap(err, filename)
	}
	leaf, ok := schema.Lookup(strings.Split(field, ".")...)
	if !ok {
		return nil, errors.Errorf("column %q not found in %s", field, filename)
	}

	var values []int64
	rows := make([]parquet.Row, 64)
	for {
		n, err := reader.ReadRows(rows)
		for _, row := range rows[:n] {
			v, err := parquetInt(row, leaf.ColumnIndex)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d", len(values)+1)
			}
			values = append(values, v)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "error reading Parquet rows")
		}
	}
	return values, nil
}

func parquetInt(row parquet.Row, column int) (int64, error) {
	for _, v := range row {
		if v.Column() != column {
			continue
		}
		switch v.Kind() {
		case parquet.Int32:
			return int64(v.Int32()), nil
		case parquet.Int64:
			return v.Int64(), nil
		}
		if v.IsNull() {
			return 0, errors.New("null value")
		}
		return 0, errors.Errorf("expected an INT32 or INT64 value, got %s", v.Kind())
	}
	return 0, errors.Errorf("column %d missing", column)
}
