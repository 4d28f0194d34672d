package goidl

// Serialized is the plain data form of a schema type: field name to value.
// Values are string, int64 or nested plain data.
type Serialized map[string]any

// Identity holds the three identity constants of a generated type. The full
// class name is the registry and envelope key and must stay stable across
// regeneration.
type Identity struct {
	PackageName   string
	ClassName     string
	FullClassName string
}

// NewIdentity derives the full class name as "<pkg>.<class>".
func NewIdentity(pkg, class string) Identity {
	return Identity{PackageName: pkg, ClassName: class, FullClassName: pkg + "." + class}
}

// Struct is implemented by every generated schema type.
type Struct interface {
	PackageName() string
	ClassName() string
	FullClassName() string
	// Serialize returns the plain data form. It fails with an unset issue when
	// a required field was never assigned.
	Serialize() (Serialized, error)
	// Descriptor describes the fields of the concrete type.
	Descriptor() *Descriptor
}

// Accessor is the dynamic, name based field access every generated type
// offers next to its typed getters and setters.
type Accessor interface {
	// Set validates v against the declared field and stores it. Nothing is
	// stored when an error is returned.
	Set(field string, v any) error
	// Get returns the current value and whether the field is set.
	Get(field string) (any, bool)
}

// Constructor builds a T from its serialized form. A nil form yields an empty
// instance.
type Constructor[T any] func(Serialized) (T, error)

// Widen adapts a constructor of a concrete generated type to one returning
// the Struct interface, so it can be registered in a Registry[Struct].
func Widen[T Struct](ctor Constructor[T]) Constructor[Struct] {
	return func(s Serialized) (Struct, error) {
		v, err := ctor(s)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
