package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/Telenav/smithy-sub007/schema"
)

// Format is the encoding of a document.
type Format int

// Document formats.
const (
	YAML Format = iota + 1
	JSON
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	}
	return "unknown"
}

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, true
	case ".json":
		return JSON, true
	}
	return 0, false
}

// Parse decodes the documents in data. A YAML stream may hold several
// documents separated by "---".
func Parse(data []byte, format Format) ([]*Document, error) {
	switch format {
	case YAML:
		var docs []*Document
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		for {
			var d Document
			if err := dec.Decode(&d); err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return nil, fmt.Errorf("decode yaml: %w", err)
			}
			docs = append(docs, &d)
		}
		return docs, nil
	case JSON:
		var d Document
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return []*Document{&d}, nil
	}
	return nil, fmt.Errorf("unsupported format %s", format)
}

// ReadFile reads the documents of one file.
func ReadFile(path string) ([]*Document, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("load %s: unknown document extension", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	docs, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	for _, d := range docs {
		d.File = path
	}
	return docs, nil
}

// Files expands directories in paths to the documents they contain, in
// lexical order. Plain files are kept as given.
func Files(paths ...string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if _, ok := FormatOf(e.Name()); ok && !e.IsDir() {
				files = append(files, filepath.Join(p, e.Name()))
			}
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// Load reads every document under paths and builds one graph.
func Load(paths ...string) (*schema.Graph, error) {
	files, err := Files(paths...)
	if err != nil {
		return nil, err
	}
	var docs []*Document
	for _, f := range files {
		ds, err := ReadFile(f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, ds...)
	}
	return Build(docs...)
}
