package gen_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/goidl/gen"
	"github.com/reoring/goidl/idl"
)

const module = "github.com/reoring/goidl"

func resolve(t *testing.T, srcs ...string) []*idl.Resolved {
	t.Helper()
	var files []*idl.File
	for i, src := range srcs {
		f, err := idl.Parse("s"+string(rune('0'+i))+".yaml", []byte(src))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		files = append(files, f)
	}
	types, err := idl.Resolve(files)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return types
}

func TestGenerate_ShippedUnitsAreCurrent(t *testing.T) {
	files, err := idl.Load("../idltest/schema/inheritance.yaml", "../idltest/schema/phase.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	types, err := idl.Resolve(files)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	cfg := gen.Config{OutDir: "..", ModulePath: module, Concurrency: 2}
	units, err := gen.Generate(context.Background(), cfg, types)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var got []string
	for _, u := range units {
		got = append(got, u.File())
	}
	want := []string{
		"idltest/inheritance/empty/empty.go",
		"idltest/phase/name/name.go",
		"idltest/phase/lengthinbytes/lengthinbytes.go",
		"idltest/phase/namestored/namestored.go",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}
	drifts, err := gen.Check(cfg, units)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, d := range drifts {
		t.Errorf("%s drifted (missing=%v):\n%s", d.File, d.Missing, d.Diff)
	}
}

func TestGenerate_OptionalFieldsAndDoc(t *testing.T) {
	types := resolve(t, `
namespace: shop
types:
  - name: Item
    doc: |
      Item is a line of an order.
      Quantities are whole units.
    fields:
      - {name: sku, type: string}
      - {name: note, type: string, optional: true}
      - {name: qty, type: integer, optional: true}
`)
	units, err := gen.Generate(context.Background(), gen.Config{ModulePath: "example.com/m"}, types)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	src := string(units[0].Source)
	for _, want := range []string{
		"package item\n",
		`PackageName   = "shop.Item"`,
		"// Item is implemented by shop.Item and every type extending it.\n//\n// Item is a line of an order.\n// Quantities are whole units.\ntype Item interface {",
		"\tNote() (string, bool)\n\tSetNote(v string)\n\tClearNote()\n",
		`{Name: "qty", Kind: goidl.KindInteger, Optional: true},`,
		"func (x *Struct) Qty() (int64, bool) { return x.qty.Get() }",
		"func (x *Struct) ClearQty() { x.qty.Clear() }",
		"n, ok, err := goidl.CheckInteger(field, v, true)",
		"\tif v, ok := x.note.Get(); ok {\n\t\tout[\"note\"] = v\n\t}\n",
		`iss = append(iss, goidl.UnsetIssue("sku"))`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("source lacks %q", want)
		}
	}
	if strings.Contains(src, `UnsetIssue("note")`) {
		t.Errorf("optional field is checked by Validate")
	}
	if units[0].ImportPath != "example.com/m/shop/item" {
		t.Errorf("import path %s", units[0].ImportPath)
	}
}

func TestGenerate_TransitiveBases(t *testing.T) {
	types := resolve(t, `
namespace: zoo
types:
  - name: Animal
    fields: [{name: id, type: integer}]
  - name: Bird
    extends: [Animal]
    fields: [{name: wings, type: integer}]
  - name: Parrot
    extends: [Bird]
    fields: [{name: words, type: string, optional: true}]
`)
	units, err := gen.Generate(context.Background(), gen.Config{ModulePath: "example.com/m"}, types)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	src := string(units[2].Source)
	for _, want := range []string{
		"\"example.com/m/zoo/animal\"\n",
		"\"example.com/m/zoo/bird\"\n",
		"Extends: []*goidl.Descriptor{bird.Descriptor},",
		"type Parrot interface {\n\tbird.Bird\n\tWords() (string, bool)\n",
		"\tid    goidl.Field[int64]\n\twings goidl.Field[int64]\n\twords goidl.Field[string]\n",
		"func RegisterAsBird(r *goidl.Registry[bird.Bird]) {",
		"func RegisterAsAnimal(r *goidl.Registry[animal.Animal]) {",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("source lacks %q", want)
		}
	}
}

func TestGenerate_Collisions(t *testing.T) {
	cases := []struct {
		name, src, want string
	}{
		{"generated method", `
namespace: c
types:
  - name: A
    fields: [{name: validate, type: string}]
`, "accessor Validate collides"},
		{"setter", `
namespace: c
types:
  - name: A
    fields: [{name: name, type: string}, {name: set_name, type: string}]
`, "fields name and set_name both need accessor SetName"},
		{"struct field", `
namespace: c
types:
  - name: A
    fields: [{name: foo_bar, type: string}, {name: fooBar, type: string}]
`, "both map to fooBar"},
		{"package dir", `
namespace: c
types:
  - {name: Ab}
  - {name: A_b}
`, "both map to c/ab"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			types := resolve(t, tc.src)
			_, err := gen.Generate(context.Background(), gen.Config{ModulePath: "example.com/m"}, types)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestWriteAndCheck(t *testing.T) {
	types := resolve(t, `
namespace: w
types:
  - name: Thing
    fields: [{name: label, type: string}]
`)
	cfg := gen.Config{OutDir: t.TempDir(), ModulePath: "example.com/m"}
	units, err := gen.Generate(context.Background(), cfg, types)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	drifts, err := gen.Check(cfg, units)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(drifts) != 1 || !drifts[0].Missing {
		t.Fatalf("want one missing file, got %+v", drifts)
	}

	if err := gen.Write(cfg, units); err != nil {
		t.Fatalf("write: %v", err)
	}
	if drifts, _ := gen.Check(cfg, units); len(drifts) != 0 {
		t.Fatalf("want no drift after write, got %+v", drifts)
	}

	p := filepath.Join(cfg.OutDir, "w", "thing", "thing.go")
	edited := strings.Replace(string(units[0].Source), `"w.Thing"`, `"w.Other"`, 1)
	if err := os.WriteFile(p, []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}
	drifts, err = gen.Check(cfg, units)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(drifts) != 1 || drifts[0].Missing {
		t.Fatalf("want one drift, got %+v", drifts)
	}
	if !strings.Contains(drifts[0].Diff, `"w.Other"`) || !strings.Contains(drifts[0].Diff, `"w.Thing"`) {
		t.Fatalf("diff does not show the change:\n%s", drifts[0].Diff)
	}
}

func TestDiff(t *testing.T) {
	a := "one\ntwo\nthree\nfour\nfive\nsix\nseven\n"
	b := "one\ntwo\nthree\nfour\nFIVE\nsix\nseven\n"
	want := "...\n 3\tthree\n 4\tfour\n-5\tfive\n+5\tFIVE\n 6\tsix\n 7\tseven\n"
	if diff := cmp.Diff(want, gen.Diff(a, b)); diff != "" {
		t.Fatalf("diff (-want +got):\n%s", diff)
	}
	if got := gen.Diff(a, a); strings.ContainsAny(got, "+-") {
		t.Fatalf("equal inputs produced changes:\n%s", got)
	}
}
