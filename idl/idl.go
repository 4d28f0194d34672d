// Package idl loads schema files and links their types into descriptors.
//
// A schema file declares types under a namespace:
//
//	namespace: idltest.phase
//	types:
//	  - name: Name_stored_
//	    extends: [Name, LengthInBytes]
//	    fields:
//	      - {name: name, type: string}
//	      - {name: bytes, type: integer}
//
// A type's package name is "<namespace>.<name>" and its class name is
// "Struct". Extends entries are either names from the same namespace or
// fully qualified package names from any loaded file.
package idl

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reoring/goidl"
)

// ClassName is the class name every generated type uses.
const ClassName = "Struct"

// File is one schema file.
type File struct {
	Path      string  `yaml:"-"`
	Namespace string  `yaml:"namespace"`
	Types     []*Type `yaml:"types"`
}

// Type is a schema type declaration.
type Type struct {
	Name    string   `yaml:"name"`
	Doc     string   `yaml:"doc,omitempty"`
	Extends []string `yaml:"extends,omitempty"`
	Fields  []*Field `yaml:"fields,omitempty"`
}

// Field is a field declaration. Type is "string" or "integer".
type Field struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional,omitempty"`
}

// PackageName returns the IDL package name of t within namespace ns.
func PackageName(ns, typeName string) string {
	if ns == "" {
		return typeName
	}
	return ns + "." + typeName
}

// Parse decodes a schema file. Unknown keys are errors.
func Parse(path string, data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	f := &File{}
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("idl: %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Load reads and parses schema files.
func Load(paths ...string) ([]*File, error) {
	files := make([]*File, 0, len(paths))
	var errs []error
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("idl: %w", err))
			continue
		}
		f, err := Parse(p, data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		files = append(files, f)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return files, nil
}

// Resolved is a type linked to its bases.
type Resolved struct {
	File       *File
	Type       *Type
	Descriptor *goidl.Descriptor
	// Bases are the direct bases in declaration order.
	Bases []*Resolved
}

// PackageName returns the IDL package name of r.
func (r *Resolved) PackageName() string { return r.Descriptor.PackageName }

// AllBases returns every transitive base once, nearest first.
func (r *Resolved) AllBases() []*Resolved {
	var out []*Resolved
	seen := map[*Resolved]bool{}
	queue := append([]*Resolved(nil), r.Bases...)
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		if seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
		queue = append(queue, b.Bases...)
	}
	return out
}

// Inherited reports whether field is provided by a base.
func (r *Resolved) Inherited(field string) bool {
	for _, b := range r.Bases {
		if _, ok := b.Descriptor.Field(field); ok {
			return true
		}
	}
	return false
}
