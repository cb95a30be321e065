package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/gridview/internal/grid"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "people.json", `[{"id": 1, "name": "Bob", "age": 30}, {"id": 2, "name": "Amy", "age": 25.5}]`)
	recs, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].ID() != "1" {
		t.Fatalf("ID = %q, want 1", recs[0].ID())
	}
	if age, _ := recs[1].Text("age"); age != "25.5" {
		t.Fatalf("age = %q, want 25.5", age)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "people.yaml", "- id: 1\n  name: Bob\n- id: 2\n  name: Amy\n  age: 25\n")
	recs, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(recs) != 2 || recs[1].ID() != "2" {
		t.Fatalf("recs = %v", recs)
	}
	if _, ok := recs[0].Text("age"); ok {
		t.Fatalf("missing age reported present")
	}
}

func TestLoad_CSV(t *testing.T) {
	path := writeFile(t, "people.csv", "id,name,age\n1,Bob,30\n2,Amy,25\n3,Cid\n")
	recs, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("len = %d, want 3", len(recs))
	}
	if v, ok := recs[0]["age"].(int64); !ok || v != 30 {
		t.Fatalf("age = %#v, want int64 30", recs[0]["age"])
	}
	if _, ok := recs[2]["age"]; ok {
		t.Fatalf("short row should omit age")
	}
}

func TestDecodeCSV_KeepsCellText(t *testing.T) {
	recs, err := DecodeCSV(strings.NewReader("id,name,code,score,neg\n007,Nan,1e3,2.5,-4\n"))
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}
	r := recs[0]
	for field, want := range map[string]string{"id": "007", "name": "Nan", "code": "1e3", "score": "2.5", "neg": "-4"} {
		if got, _ := r.Text(field); got != want {
			t.Fatalf("%s shown as %q, want %q", field, got, want)
		}
	}
	if _, ok := r["id"].(string); !ok {
		t.Fatalf("id = %#v, want string", r["id"])
	}
	if v, ok := r["score"].(float64); !ok || v != 2.5 {
		t.Fatalf("score = %#v, want float64 2.5", r["score"])
	}
	if v, ok := r["neg"].(int64); !ok || v != -4 {
		t.Fatalf("neg = %#v, want int64 -4", r["neg"])
	}

	e := grid.New(recs, grid.Options{})
	e.SetFilter("id", "00")
	if e.Len() != 1 {
		t.Fatalf("filter on zero-padded id matched %d rows, want 1", e.Len())
	}
	if r.ID() != "007" {
		t.Fatalf("ID = %q, want 007", r.ID())
	}
}

func TestLoad_CSVMalformed(t *testing.T) {
	path := writeFile(t, "bad.csv", "id,name\n1,\"Bob\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse csv dataset") {
		t.Fatalf("Load error = %v, want parse csv dataset", err)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "people.xml", "<people/>")
	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Load error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeFile(t, "bad.json", `{"id": 1}`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse json dataset") {
		t.Fatalf("Load error = %v, want parse json dataset", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load error = %v, want ErrNotExist", err)
	}
}

func TestGenerate(t *testing.T) {
	recs := Generate(1000)
	if len(recs) != 1000 {
		t.Fatalf("len = %d, want 1000", len(recs))
	}
	first := recs[0]
	if first.ID() != "1" || first["name"] != "User 1" || first["age"] != 20 {
		t.Fatalf("first = %v", first)
	}
	last := recs[999]
	if last["name"] != "User 1000" || last["age"] != 20+999%50 {
		t.Fatalf("last = %v", last)
	}
	if Generate(0) != nil {
		t.Fatalf("Generate(0) should be nil")
	}
}

func TestInferColumns(t *testing.T) {
	cols := InferColumns([]grid.Record{
		{"name": "Bob", "id": 1},
		{"id": 2, "first_seen": "x", "age": 3},
	})
	var fields, labels []string
	for _, c := range cols {
		fields = append(fields, c.Field)
		labels = append(labels, c.Label)
		if !c.Sortable || c.Filter != grid.FilterText {
			t.Fatalf("column %q not sortable/filterable", c.Field)
		}
	}
	if got := strings.Join(fields, ","); got != "id,age,first_seen,name" {
		t.Fatalf("fields = %s", got)
	}
	if got := strings.Join(labels, ","); got != "ID,Age,First Seen,Name" {
		t.Fatalf("labels = %s", got)
	}
}

func TestStat(t *testing.T) {
	path := writeFile(t, "people.json", "[]")
	fp, err := Stat(path)
	if err != nil {
		t.Fatalf("Stat returned error: %v", err)
	}
	if fp.Size != 2 || fp.ModTime.IsZero() {
		t.Fatalf("fingerprint = %+v", fp)
	}
}
