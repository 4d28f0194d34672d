package idltest_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/goidl"
	"github.com/reoring/goidl/idltest"
	"github.com/reoring/goidl/idltest/inheritance/empty"
	"github.com/reoring/goidl/idltest/phase/lengthinbytes"
	"github.com/reoring/goidl/idltest/phase/name"
	"github.com/reoring/goidl/idltest/phase/namestored"
)

func TestRoundTrip(t *testing.T) {
	in := goidl.Serialized{"name": "a.txt", "bytes": 10}
	x, err := namestored.Decode(in)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out, err := x.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	want := goidl.Serialized{"name": "a.txt", "bytes": int64(10)}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_Table(t *testing.T) {
	cases := []goidl.Serialized{
		{"name": "", "bytes": int64(0)},
		{"name": "with spaces.bin", "bytes": int64(-1)},
		{"name": "big", "bytes": int64(1 << 62)},
	}
	for _, in := range cases {
		x, err := namestored.Decode(in)
		if err != nil {
			t.Fatalf("Decode(%v): %v", in, err)
		}
		out, err := x.Serialize()
		if err != nil {
			t.Fatalf("Serialize: %v", err)
		}
		if diff := cmp.Diff(in, out); diff != "" {
			t.Fatalf("round trip mismatch:\n%s", diff)
		}
	}
}

func TestSet_RequiredStringRejectsNilAndNumbers(t *testing.T) {
	var nilStr *string
	for _, v := range []any{nil, nilStr, 42} {
		x := name.New()
		err := x.Set("name", v)
		if !errors.Is(err, goidl.ErrInvalidArgument) {
			t.Fatalf("Set(name, %v): expected invalid argument, got %v", v, err)
		}
		if _, ok := x.Get("name"); ok {
			t.Fatalf("failed Set must not store")
		}
	}
}

func TestSet_IntegerField(t *testing.T) {
	x := lengthinbytes.New()
	err := x.Set("bytes", 3.5)
	iss, ok := goidl.AsIssues(err)
	if !ok || iss[0].Code != goidl.CodeNotInteger {
		t.Fatalf("expected not_integer, got %v", err)
	}
	for _, v := range []any{3.0, 3} {
		if err := x.Set("bytes", v); err != nil {
			t.Fatalf("Set(bytes, %v): %v", v, err)
		}
		if x.Bytes() != 3 {
			t.Fatalf("Bytes() = %d", x.Bytes())
		}
		got, ok := x.Get("bytes")
		if !ok || got != int64(3) {
			t.Fatalf("Get(bytes) = %v, %v", got, ok)
		}
	}
}

func TestSet_UnknownField(t *testing.T) {
	err := name.New().Set("nope", "x")
	iss, ok := goidl.AsIssues(err)
	if !ok || iss[0].Code != goidl.CodeUnknownField {
		t.Fatalf("expected unknown_field, got %v", err)
	}
	if err := empty.New().Set("anything", 1); err == nil {
		t.Fatalf("Empty declares no fields")
	}
}

func TestSerialize_UnsetRequiredFieldsFail(t *testing.T) {
	x := namestored.New()
	x.SetName("only-name")
	_, err := x.Serialize()
	iss, ok := goidl.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != goidl.CodeUnset || iss[0].Path != "/bytes" {
		t.Fatalf("expected one unset issue for /bytes, got %v", err)
	}
	x.SetBytes(7)
	if err := x.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestDecode_ReportsEveryBadField(t *testing.T) {
	_, err := namestored.Decode(goidl.Serialized{"name": 1, "bytes": "x", "ignored": true})
	iss, ok := goidl.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	if diff := cmp.Diff([]string{goidl.CodeInvalidType, goidl.CodeInvalidType}, iss.Codes()); diff != "" {
		t.Fatalf("codes mismatch:\n%s", diff)
	}
	if iss[0].Path != "/name" || iss[1].Path != "/bytes" {
		t.Fatalf("unexpected paths: %v", iss)
	}
}

func TestDecode_NilIsEmptyInstance(t *testing.T) {
	x, err := namestored.Decode(nil)
	if err != nil {
		t.Fatalf("Decode(nil): %v", err)
	}
	if _, ok := x.Get("name"); ok {
		t.Fatalf("fields must be unset")
	}
}

func TestCreate_Empty(t *testing.T) {
	r := empty.NewRegistry()
	v, err := r.CreateFrom(map[string]any{"idltest.inheritance.Empty.Struct": map[string]any{}})
	if err != nil {
		t.Fatalf("CreateFrom: %v", err)
	}
	if v.FullClassName() != "idltest.inheritance.Empty.Struct" {
		t.Fatalf("FullClassName() = %q", v.FullClassName())
	}
	if v.PackageName() != "idltest.inheritance.Empty" || v.ClassName() != "Struct" {
		t.Fatalf("unexpected identity: %s %s", v.PackageName(), v.ClassName())
	}
}

func TestCreate_NullBodyBuildsUnsetInstance(t *testing.T) {
	v, err := namestored.NewRegistry().CreateFrom(map[string]any{namestored.FullClassName: nil})
	if err != nil {
		t.Fatalf("CreateFrom: %v", err)
	}
	if _, ok := v.Get("name"); ok {
		t.Fatalf("fields must be unset")
	}
	if _, err := v.Serialize(); !errors.Is(err, goidl.ErrInvalidArgument) {
		t.Fatalf("Serialize of an unset instance must fail, got %v", err)
	}
}

func TestCreate_UnknownType(t *testing.T) {
	_, err := empty.NewRegistry().CreateFrom(map[string]any{"unknown.Type": map[string]any{}})
	if !errors.Is(err, goidl.ErrUnknownType) || !strings.Contains(err.Error(), "unknown.Type") {
		t.Fatalf("expected unknown polymorphic type error naming unknown.Type, got %v", err)
	}
}

// extendedName overrides the stock Name implementation under the same class
// name.
type extendedName struct{ *name.Struct }

func TestRegister_OverwriteReplacesLaterCreates(t *testing.T) {
	r := name.NewRegistry()
	env := goidl.Envelope{Type: name.FullClassName, Data: goidl.Serialized{"name": "a"}}
	before, err := r.Create(env)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	r.Register(name.FullClassName, func(s goidl.Serialized) (name.Name, error) {
		x, err := name.Decode(s)
		if err != nil {
			return nil, err
		}
		return extendedName{x}, nil
	})
	after, err := r.Create(env)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := after.(extendedName); !ok {
		t.Fatalf("expected the override, got %T", after)
	}
	if _, ok := before.(*name.Struct); !ok {
		t.Fatalf("existing instance must keep its type, got %T", before)
	}
}

func TestPolymorphism_SubtypeThroughBaseRegistry(t *testing.T) {
	r := name.NewRegistry()
	namestored.RegisterAsName(r)

	v, err := r.Create(goidl.Envelope{Type: namestored.FullClassName, Data: goidl.Serialized{"name": "f", "bytes": 2}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if v.Name() != "f" {
		t.Fatalf("Name() = %q", v.Name())
	}
	ns, ok := v.(namestored.NameStored)
	if !ok || ns.Bytes() != 2 {
		t.Fatalf("expected a NameStored with bytes=2, got %T", v)
	}

	lr := lengthinbytes.NewRegistry()
	namestored.RegisterAsLengthInBytes(lr)
	if diff := cmp.Diff([]string{lengthinbytes.FullClassName, namestored.FullClassName}, lr.Names()); diff != "" {
		t.Fatalf("names mismatch:\n%s", diff)
	}
}

func TestAggregateRegistry(t *testing.T) {
	r := idltest.NewRegistry()
	if r.Len() != len(idltest.Descriptors()) {
		t.Fatalf("Len() = %d", r.Len())
	}
	for _, d := range idltest.Descriptors() {
		v, err := r.Create(goidl.Envelope{Type: d.FullClassName, Data: sample(d)})
		if err != nil {
			t.Fatalf("Create(%s): %v", d.FullClassName, err)
		}
		env, err := goidl.Wrap(v)
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		if diff := cmp.Diff(goidl.Envelope{Type: d.FullClassName, Data: sample(d)}, env); diff != "" {
			t.Fatalf("envelope round trip mismatch:\n%s", diff)
		}
	}
}

func TestFingerprints(t *testing.T) {
	cases := map[*goidl.Descriptor]uint64{
		empty.Descriptor:         empty.Fingerprint,
		name.Descriptor:          name.Fingerprint,
		lengthinbytes.Descriptor: lengthinbytes.Fingerprint,
		namestored.Descriptor:    namestored.Fingerprint,
	}
	for d, want := range cases {
		if got := d.Fingerprint(); got != want {
			t.Fatalf("%s: Fingerprint() = %#x, generated %#x", d.FullClassName, got, want)
		}
	}
}

func TestNameStored_Descriptor(t *testing.T) {
	if !namestored.Descriptor.Derives(name.FullClassName) || !namestored.Descriptor.Derives(lengthinbytes.FullClassName) {
		t.Fatalf("Name_stored_ must derive from Name and LengthInBytes")
	}
	want := []goidl.FieldDesc{
		{Name: "name", Kind: goidl.KindString},
		{Name: "bytes", Kind: goidl.KindInteger},
	}
	if diff := cmp.Diff(want, namestored.Descriptor.AllFields()); diff != "" {
		t.Fatalf("fields mismatch:\n%s", diff)
	}
}

func sample(d *goidl.Descriptor) goidl.Serialized {
	out := goidl.Serialized{}
	for _, fd := range d.AllFields() {
		switch fd.Kind {
		case goidl.KindString:
			out[fd.Name] = "v-" + fd.Name
		case goidl.KindInteger:
			out[fd.Name] = int64(len(fd.Name))
		}
	}
	return out
}
