// Package searchfile reads and writes the JSON files that store a search
// query together with its provenance: platform, field, authors and dates.
package searchfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/valyala/fastjson"
)

// Author identifies one person who designed or ran the search.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	ORCID string `json:"orcid,omitempty"`
}

// File is one stored search.
type File struct {
	Platform     string   `json:"platform"`
	Database     []string `json:"database,omitempty"`
	SearchString string   `json:"search_string"`
	Field        string   `json:"field,omitempty"`
	Authors      []Author `json:"authors,omitempty"`
	DateRun      string   `json:"date_run,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	Description  string   `json:"description,omitempty"`
}

var fileParsers fastjson.ParserPool

// Load reads and validates a search file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read search file: %w", err)
	}
	f, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse search file %s: %w", path, err)
	}
	return f, nil
}

// Decode parses search-file JSON.
func Decode(data []byte) (*File, error) {
	p := fileParsers.Get()
	defer fileParsers.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	f := &File{
		Platform:     string(v.GetStringBytes("platform")),
		SearchString: string(v.GetStringBytes("search_string")),
		Field:        string(v.GetStringBytes("field")),
		DateRun:      string(v.GetStringBytes("date_run")),
		Description:  string(v.GetStringBytes("description")),
	}
	for _, d := range v.GetArray("database") {
		f.Database = append(f.Database, string(d.GetStringBytes()))
	}
	for _, k := range v.GetArray("keywords") {
		f.Keywords = append(f.Keywords, string(k.GetStringBytes()))
	}
	for _, a := range v.GetArray("authors") {
		f.Authors = append(f.Authors, Author{
			Name:  string(a.GetStringBytes("name")),
			Email: string(a.GetStringBytes("email")),
			ORCID: string(a.GetStringBytes("orcid")),
		})
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the required fields.
func (f *File) Validate() error {
	if f.Platform == "" {
		return fmt.Errorf("search file: missing platform")
	}
	if f.SearchString == "" {
		return fmt.Errorf("search file: missing search_string")
	}
	return nil
}

// Save writes the file as indented JSON.
func (f *File) Save(path string) error {
	if err := f.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
