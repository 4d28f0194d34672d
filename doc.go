// Package goidl is the runtime of the goidl IDL compiler's Go output.
//
// Every generated schema type ("Struct") provides:
//
// - Identity constants (package name, class name, full class name)
// - Typed accessors plus name based Set/Get that validate dynamic values
// - Decode from, and Serialize to, the plain Serialized form
// - Self registration into a Registry, which rebuilds the concrete type
// behind a polymorphic Envelope
//
// Design policy:
// - Keep the runtime in the root package; codecs live under codec/, the
// schema model under idl/, the generator under gen/ and the CLI under
// cmd/goidl.
// - Unset required fields are an explicit state (Field[T]) and are rejected
// by Serialize rather than emitted as holes.
// - Registries are values passed to construction sites, not globals.
//
// Typical usage:
//
//	reg := namestored.NewRegistry()
//	v, err := reg.Create(goidl.Envelope{Type: namestored.FullClassName, Data: data})
//	out, err := v.Serialize()
package goidl
