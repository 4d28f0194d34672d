package goidl

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	js "github.com/reoring/goidl/jsonschema"
)

// Kind is the semantic type of a field.
type Kind int

const (
	KindString Kind = iota + 1
	KindInteger
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a schema type name to a Kind. "int" is accepted as an alias
// of "integer".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "string":
		return KindString, nil
	case "integer", "int":
		return KindInteger, nil
	}
	return 0, fmt.Errorf("goidl: unknown field type %q", s)
}

// FieldDesc is a declared field: name, semantic type and optionality.
type FieldDesc struct {
	Name     string
	Kind     Kind
	Optional bool
}

// Descriptor describes a schema type and the types it extends.
type Descriptor struct {
	Identity
	Fields  []FieldDesc
	Extends []*Descriptor
}

// AllFields returns inherited fields (in Extends order) followed by the own
// fields. Each name appears once; a redeclaration replaces the inherited
// entry in place.
func (d *Descriptor) AllFields() []FieldDesc {
	var out []FieldDesc
	idx := map[string]int{}
	add := func(fd FieldDesc) {
		if i, ok := idx[fd.Name]; ok {
			out[i] = fd
			return
		}
		idx[fd.Name] = len(out)
		out = append(out, fd)
	}
	for _, base := range d.Extends {
		for _, fd := range base.AllFields() {
			if _, ok := idx[fd.Name]; ok {
				continue
			}
			add(fd)
		}
	}
	for _, fd := range d.Fields {
		add(fd)
	}
	return out
}

// Field looks up a declared field, own or inherited.
func (d *Descriptor) Field(name string) (FieldDesc, bool) {
	for _, fd := range d.AllFields() {
		if fd.Name == name {
			return fd, true
		}
	}
	return FieldDesc{}, false
}

// Derives reports whether d is, or transitively extends, the type named
// fullClassName.
func (d *Descriptor) Derives(fullClassName string) bool {
	if d.FullClassName == fullClassName {
		return true
	}
	for _, base := range d.Extends {
		if base.Derives(fullClassName) {
			return true
		}
	}
	return false
}

// String renders the canonical text of the descriptor:
//
//	pkg.Class<base.A,base.B>{name:string,count:integer?}
func (d *Descriptor) String() string {
	b := &strings.Builder{}
	b.WriteString(d.FullClassName)
	if len(d.Extends) > 0 {
		b.WriteByte('<')
		for i, base := range d.Extends {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(base.FullClassName)
		}
		b.WriteByte('>')
	}
	b.WriteByte('{')
	for i, fd := range d.AllFields() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(fd.Name)
		b.WriteByte(':')
		b.WriteString(fd.Kind.String())
		if fd.Optional {
			b.WriteByte('?')
		}
	}
	b.WriteByte('}')
	return b.String()
}

// Fingerprint is the xxhash64 of the canonical text. It changes whenever the
// identity, the bases or the field set changes.
func (d *Descriptor) Fingerprint() uint64 {
	return xxhash.Sum64String(d.String())
}

// JSONSchema projects the serialized form of d as an object schema.
func (d *Descriptor) JSONSchema() *js.Schema {
	s := js.Object()
	s.Title = d.FullClassName
	s.AdditionalProperties = false
	for _, fd := range d.AllFields() {
		p := &js.Schema{Type: fd.Kind.String()}
		s.Properties[fd.Name] = p
		if !fd.Optional {
			s.Required = append(s.Required, fd.Name)
		}
	}
	return s
}

// Assign decodes s field by field through set, in declared order, and
// collects every failure into one Issues value. Keys that d does not declare
// are ignored.
func Assign(d *Descriptor, s Serialized, set func(field string, v any) error) error {
	var iss Issues
	for _, fd := range d.AllFields() {
		if err := set(fd.Name, s[fd.Name]); err != nil {
			if more, ok := AsIssues(err); ok {
				iss = AppendIssues(iss, more...)
				continue
			}
			return err
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// JoinIssues concatenates the Issues carried by errs. A nil result means no
// error was given; an error that is not Issues is returned as is.
func JoinIssues(errs ...error) error {
	var iss Issues
	for _, err := range errs {
		if err == nil {
			continue
		}
		more, ok := AsIssues(err)
		if !ok {
			return err
		}
		iss = AppendIssues(iss, more...)
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}
