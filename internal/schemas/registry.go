// internal/schemas/registry.go
package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/multierr"
)

var ErrUnknownSchema = errors.New("SCHEMA_NOT_FOUND")

// Registry holds the compiled documents. It is immutable after NewRegistry
// returns and safe for concurrent use.
type Registry struct {
	documents map[Name]doc
	compiled  map[Name]*gojsonschema.Schema
}

// NewRegistry compiles every document once. All compile failures are reported together.
func NewRegistry() (*Registry, error) {
	docs := documents()
	r := &Registry{
		documents: docs,
		compiled:  make(map[Name]*gojsonschema.Schema, len(docs)),
	}

	var errs error
	for _, name := range sortedNames(docs) {
		sl := gojsonschema.NewSchemaLoader()
		sl.Draft = gojsonschema.Draft4

		schema, err := sl.Compile(gojsonschema.NewGoLoader(root(docs[name])))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("compile schema %s: %w", name, err))
			continue
		}
		r.compiled[name] = schema
	}
	if errs != nil {
		return nil, errs
	}

	return r, nil
}

// MustNewRegistry is NewRegistry for process start-up and tests.
func MustNewRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// Validate checks value against the named document. value may be a decoded JSON
// document or any Go value that marshals to one.
func (r *Registry) Validate(name Name, value interface{}) error {
	schema, ok := r.compiled[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(value))
	if err != nil {
		return &StructuralError{
			Schema: name,
			Path:   rootPath,
			Reason: fmt.Sprintf("document could not be loaded: %v", err),
		}
	}
	if result.Valid() {
		return nil
	}

	return newStructuralError(name, result.Errors())
}

// Names lists every document name in lexical order.
func (r *Registry) Names() []Name {
	return sortedNames(r.documents)
}

// Document renders the named document as draft-04 JSON.
func (r *Registry) Document(name Name) ([]byte, error) {
	d, ok := r.documents[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	return json.MarshalIndent(root(d), "", "  ")
}

// root copies d with the $schema keyword added so shared sub-documents stay untouched.
func root(d doc) doc {
	out := make(doc, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	out["$schema"] = draft04
	return out
}

func sortedNames(docs map[Name]doc) []Name {
	names := make([]Name, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func sortedKeys(d doc) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
