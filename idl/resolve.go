package idl

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/reoring/goidl"
)

type entry struct {
	file *File
	typ  *Type
	pkg  string
}

const (
	unvisited = iota
	visiting
	visited
)

// Resolve links the types of files and returns them with every base before
// the types extending it. All problems are reported together.
func Resolve(files []*File) ([]*Resolved, error) {
	var errs []error
	fail := func(format string, a ...any) { errs = append(errs, fmt.Errorf("idl: "+format, a...)) }

	byName := map[string]*entry{}
	var order []*entry
	for _, f := range files {
		if f.Namespace != "" && !validNamespace(f.Namespace) {
			fail("%s: invalid namespace %q", f.Path, f.Namespace)
			continue
		}
		for _, t := range f.Types {
			if !validIdent(t.Name) {
				fail("%s: invalid type name %q", f.Path, t.Name)
				continue
			}
			pkg := PackageName(f.Namespace, t.Name)
			if prev, ok := byName[pkg]; ok {
				fail("%s: type %s already declared in %s", f.Path, pkg, prev.file.Path)
				continue
			}
			e := &entry{file: f, typ: t, pkg: pkg}
			byName[pkg] = e
			order = append(order, e)
		}
	}

	lookup := func(ref, ns string) *entry {
		if e, ok := byName[PackageName(ns, ref)]; ok {
			return e
		}
		return byName[ref]
	}

	state := map[*entry]int{}
	resolved := map[*entry]*Resolved{}
	var out []*Resolved
	var visit func(e *entry, chain []string) *Resolved
	visit = func(e *entry, chain []string) *Resolved {
		switch state[e] {
		case visited:
			return resolved[e]
		case visiting:
			fail("inheritance cycle: %s", strings.Join(append(chain, e.pkg), " -> "))
			return nil
		}
		state[e] = visiting
		defer func() { state[e] = visited }()

		r := &Resolved{File: e.file, Type: e.typ}
		ok := true
		seen := map[*entry]bool{}
		for _, ref := range e.typ.Extends {
			be := lookup(ref, e.file.Namespace)
			if be == nil {
				fail("%s: unknown base %q", e.pkg, ref)
				ok = false
				continue
			}
			if seen[be] {
				fail("%s: base %s listed twice", e.pkg, be.pkg)
				ok = false
				continue
			}
			seen[be] = true
			br := visit(be, append(chain, e.pkg))
			if br == nil {
				ok = false
				continue
			}
			r.Bases = append(r.Bases, br)
		}
		if !ok {
			return nil
		}
		d, err := describe(e.pkg, e.typ, r.Bases)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		r.Descriptor = d
		resolved[e] = r
		out = append(out, r)
		return r
	}
	for _, e := range order {
		visit(e, nil)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

func describe(pkg string, t *Type, bases []*Resolved) (*goidl.Descriptor, error) {
	var errs []error
	fail := func(format string, a ...any) { errs = append(errs, fmt.Errorf("idl: %s: "+format, append([]any{pkg}, a...)...)) }

	inherited := map[string]goidl.FieldDesc{}
	from := map[string]string{}
	for _, b := range bases {
		for _, fd := range b.Descriptor.AllFields() {
			if prev, ok := inherited[fd.Name]; ok && prev != fd {
				fail("field %s inherited from %s and %s with different declarations", fd.Name, from[fd.Name], b.PackageName())
				continue
			}
			inherited[fd.Name] = fd
			from[fd.Name] = b.PackageName()
		}
	}

	d := &goidl.Descriptor{Identity: goidl.NewIdentity(pkg, ClassName)}
	for _, b := range bases {
		d.Extends = append(d.Extends, b.Descriptor)
	}
	own := map[string]bool{}
	for _, f := range t.Fields {
		if !validIdent(f.Name) {
			fail("invalid field name %q", f.Name)
			continue
		}
		if own[f.Name] {
			fail("field %s declared twice", f.Name)
			continue
		}
		own[f.Name] = true
		kind, err := goidl.ParseKind(f.Type)
		if err != nil {
			fail("field %s: unknown type %q", f.Name, f.Type)
			continue
		}
		fd := goidl.FieldDesc{Name: f.Name, Kind: kind, Optional: f.Optional}
		if prev, ok := inherited[f.Name]; ok && prev != fd {
			fail("field %s redeclares %s from %s as %s", f.Name, describeField(prev), from[f.Name], describeField(fd))
			continue
		}
		d.Fields = append(d.Fields, fd)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return d, nil
}

func describeField(fd goidl.FieldDesc) string {
	if fd.Optional {
		return "optional " + fd.Kind.String()
	}
	return fd.Kind.String()
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

func validNamespace(ns string) bool {
	for _, part := range strings.Split(ns, ".") {
		if !validIdent(part) {
			return false
		}
	}
	return true
}
