// Package idltest bundles the generated idltest schema units so tools can
// work with all of them through one registry.
package idltest

//go:generate go run ../cmd/goidl gen -o .. -module github.com/reoring/goidl schema/inheritance.yaml schema/phase.yaml

import (
	"github.com/reoring/goidl"
	"github.com/reoring/goidl/idltest/inheritance/empty"
	"github.com/reoring/goidl/idltest/phase/lengthinbytes"
	"github.com/reoring/goidl/idltest/phase/name"
	"github.com/reoring/goidl/idltest/phase/namestored"
)

// Register adds every idltest type to r.
func Register(r *goidl.Registry[goidl.Struct]) {
	r.RegisterDescribed(empty.FullClassName, goidl.Widen[*empty.Struct](empty.Decode), empty.Descriptor)
	r.RegisterDescribed(name.FullClassName, goidl.Widen[*name.Struct](name.Decode), name.Descriptor)
	r.RegisterDescribed(lengthinbytes.FullClassName, goidl.Widen[*lengthinbytes.Struct](lengthinbytes.Decode), lengthinbytes.Descriptor)
	r.RegisterDescribed(namestored.FullClassName, goidl.Widen[*namestored.Struct](namestored.Decode), namestored.Descriptor)
}

// NewRegistry returns a registry holding every idltest type.
func NewRegistry(opts ...goidl.RegistryOption) *goidl.Registry[goidl.Struct] {
	r := goidl.NewRegistry[goidl.Struct](opts...)
	Register(r)
	return r
}

// Descriptors lists the idltest descriptors, bases before the types
// extending them.
func Descriptors() []*goidl.Descriptor {
	return []*goidl.Descriptor{
		empty.Descriptor,
		name.Descriptor,
		lengthinbytes.Descriptor,
		namestored.Descriptor,
	}
}
