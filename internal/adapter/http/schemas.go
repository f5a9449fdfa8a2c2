package httpadapter

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaBaseURL = "https://beastbazaar.local/schemas/"

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Schemas validates request bodies before they reach the controller.
type Schemas struct {
	byName map[string]*jsonschema.Schema
}

func LoadSchemas() (*Schemas, error) {
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}
	c := jsonschema.NewCompiler()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		data, err := fs.ReadFile(schemaFS, "schemas/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		if err := c.AddResource(schemaBaseURL+e.Name(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", e.Name(), err)
		}
		names = append(names, e.Name())
	}

	out := &Schemas{byName: make(map[string]*jsonschema.Schema, len(names))}
	for _, file := range names {
		s, err := c.Compile(schemaBaseURL + file)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", file, err)
		}
		out.byName[strings.TrimSuffix(file, ".schema.json")] = s
	}
	return out, nil
}

func MustLoadSchemas() *Schemas {
	s, err := LoadSchemas()
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks a decoded JSON document against the named schema.
func (s *Schemas) Validate(name string, doc any) error {
	schema, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}
	return schema.Validate(doc)
}
