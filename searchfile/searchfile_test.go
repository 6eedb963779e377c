package searchfile

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sample = `{
  "platform": "wos",
  "database": ["Web of Science Core Collection"],
  "search_string": "TS=(dementia AND care)",
  "field": "topic",
  "authors": [
    {"name": "A. Reviewer", "email": "a@example.org", "orcid": "0000-0002-1825-0097"}
  ],
  "date_run": "2024-03-01",
  "keywords": ["dementia", "care"],
  "description": "Primary search for the dementia care review."
}`

func TestDecode(t *testing.T) {
	f, err := Decode([]byte(sample))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := &File{
		Platform:     "wos",
		Database:     []string{"Web of Science Core Collection"},
		SearchString: "TS=(dementia AND care)",
		Field:        "topic",
		Authors: []Author{
			{Name: "A. Reviewer", Email: "a@example.org", ORCID: "0000-0002-1825-0097"},
		},
		DateRun:     "2024-03-01",
		Keywords:    []string{"dementia", "care"},
		Description: "Primary search for the dementia care review.",
	}
	if !reflect.DeepEqual(f, want) {
		t.Errorf("Decode() = %+v, want %+v", f, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{"platform": "wos"`},
		{"missing platform", `{"search_string": "dementia"}`},
		{"missing search string", `{"platform": "wos"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data)); err == nil {
				t.Errorf("Decode(%s) succeeded", tt.data)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.json")
	f := &File{
		Platform:     "pubmed",
		SearchString: "dementia[tiab] AND care[tiab]",
		Keywords:     []string{"dementia"},
	}
	if err := f.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, f) {
		t.Errorf("Load() = %+v, want %+v", got, f)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("saved file does not end with a newline")
	}
	if strings.Contains(string(data), `"field"`) {
		t.Error("empty optional fields should be omitted")
	}
}

func TestSaveRejectsInvalidFile(t *testing.T) {
	f := &File{Platform: "wos"}
	if err := f.Save(filepath.Join(t.TempDir(), "search.json")); err == nil {
		t.Fatal("Save() accepted a file without a search string")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("Load() succeeded on a missing file")
	}
}
