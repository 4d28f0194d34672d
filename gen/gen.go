// Package gen renders Go packages for resolved schema types.
//
// Each type becomes one package under Config.OutDir whose directory mirrors
// the namespace: idltest.phase.Name_stored_ is written to
// idltest/phase/namestored/namestored.go. Generated packages depend only on
// the runtime package and on the packages of the types they extend.
package gen

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"go/format"
	"path"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/reoring/goidl"
	"github.com/reoring/goidl/idl"
)

// DefaultRuntime is the import path of the runtime package.
const DefaultRuntime = "github.com/reoring/goidl"

//go:embed templates/unit.go.tmpl
var templates embed.FS

var unitTmpl = template.Must(template.New("unit.go.tmpl").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(templates, "templates/unit.go.tmpl"))

// Config controls where units are written and how they import each other.
type Config struct {
	// OutDir is the directory units are written under.
	OutDir string
	// ModulePath is the import path of OutDir.
	ModulePath string
	// Runtime is the import path of the runtime package. Empty means
	// DefaultRuntime.
	Runtime string
	// Concurrency bounds parallel rendering. Zero or less means no limit.
	Concurrency int

	Logger *zap.Logger
}

func (c Config) runtime() string {
	if c.Runtime == "" {
		return DefaultRuntime
	}
	return c.Runtime
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Unit is the generated package of one type.
type Unit struct {
	Type *idl.Resolved
	// Package is the Go package name.
	Package string
	// Interface is the name of the exported interface.
	Interface string
	// Dir is the slash separated directory relative to OutDir.
	Dir        string
	ImportPath string
	// Source is the formatted file, set by Generate.
	Source []byte
}

// File returns the slash separated path of the unit's file relative to
// OutDir.
func (u *Unit) File() string { return path.Join(u.Dir, u.Package+".go") }

// Plan names the units of types without rendering them. Types must be in
// the order idl.Resolve returns.
func Plan(cfg Config, types []*idl.Resolved) ([]*Unit, error) {
	units := make([]*Unit, 0, len(types))
	dirs := map[string]string{}
	for _, r := range types {
		pkg := packageName(r.Type.Name)
		iface := exportedName(r.Type.Name)
		if packageScope[iface] || strings.HasPrefix(iface, "RegisterAs") {
			iface += "Type"
		}
		dir := dirOf(r.File.Namespace, pkg)
		if prev, ok := dirs[dir]; ok {
			return nil, fmt.Errorf("gen: %s and %s both map to %s", prev, r.PackageName(), dir)
		}
		dirs[dir] = r.PackageName()
		units = append(units, &Unit{
			Type:       r,
			Package:    pkg,
			Interface:  iface,
			Dir:        dir,
			ImportPath: strings.TrimSuffix(cfg.ModulePath, "/") + "/" + dir,
		})
	}
	return units, nil
}

// Generate plans and renders every type. Units render concurrently; the
// first failure cancels the rest.
func Generate(ctx context.Context, cfg Config, types []*idl.Resolved) ([]*Unit, error) {
	units, err := Plan(cfg, types)
	if err != nil {
		return nil, err
	}
	byType := make(map[*idl.Resolved]*Unit, len(units))
	for _, u := range units {
		byType[u.Type] = u
	}
	log := cfg.logger()
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	}
	for _, u := range units {
		u := u
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := render(cfg, u, byType)
			if err != nil {
				return err
			}
			u.Source = src
			log.Debug("rendered", zap.String("type", u.Type.PackageName()), zap.String("file", u.File()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

type importSpec struct {
	Alias string
	Path  string
}

type fieldData struct {
	Name      string
	Go        string
	Var       string
	Type      string
	Check     string
	KindConst string
	Optional  bool
}

type baseData struct {
	Interface string
	Qual      string
}

type unitData struct {
	Package       string
	Imports       []importSpec
	PackageName   string
	ClassName     string
	FullClassName string
	Fingerprint   uint64
	Doc           []string
	Interface     string
	Embeds        []string
	Extends       []string
	OwnFields     []fieldData
	NewFields     []fieldData
	Fields        []fieldData
	Required      []fieldData
	AllBases      []baseData
}

func render(cfg Config, u *Unit, byType map[*idl.Resolved]*Unit) ([]byte, error) {
	data, err := unitDataOf(cfg, u, byType)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := unitTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("gen: %s: %w", u.Type.PackageName(), err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gen: format %s: %w", u.File(), err)
	}
	return src, nil
}

func unitDataOf(cfg Config, u *Unit, byType map[*idl.Resolved]*Unit) (*unitData, error) {
	r := u.Type
	d := r.Descriptor
	fail := func(msg string, a ...any) error {
		return fmt.Errorf("gen: %s: "+msg, append([]any{r.PackageName()}, a...)...)
	}
	data := &unitData{
		Package:       u.Package,
		PackageName:   d.PackageName,
		ClassName:     d.ClassName,
		FullClassName: d.FullClassName,
		Fingerprint:   d.Fingerprint(),
		Interface:     u.Interface,
	}
	if doc := strings.TrimSpace(r.Type.Doc); doc != "" {
		data.Doc = append([]string{""}, strings.Split(doc, "\n")...)
	}

	rt := importSpec{Path: cfg.runtime()}
	if path.Base(rt.Path) != "goidl" {
		rt.Alias = "goidl"
	}
	data.Imports = append(data.Imports, rt)
	quals := map[*idl.Resolved]string{}
	used := map[string]bool{}
	registerAs := map[string]string{}
	for _, b := range r.AllBases() {
		bu, ok := byType[b]
		if !ok {
			return nil, fail("base %s is not being generated", b.PackageName())
		}
		name := bu.Package
		for i := 2; fileScope[name] || used[name]; i++ {
			name = bu.Package + strconv.Itoa(i)
		}
		used[name] = true
		quals[b] = name
		spec := importSpec{Path: bu.ImportPath}
		if name != bu.Package {
			spec.Alias = name
		}
		data.Imports = append(data.Imports, spec)
		if prev, dup := registerAs[bu.Interface]; dup {
			return nil, fail("bases %s and %s both need RegisterAs%s", prev, b.PackageName(), bu.Interface)
		}
		registerAs[bu.Interface] = b.PackageName()
		data.AllBases = append(data.AllBases, baseData{Interface: bu.Interface, Qual: name + "." + bu.Interface})
	}
	sort.Slice(data.Imports, func(i, j int) bool { return data.Imports[i].Path < data.Imports[j].Path })
	for _, b := range r.Bases {
		data.Embeds = append(data.Embeds, quals[b]+"."+byType[b].Interface)
		data.Extends = append(data.Extends, quals[b]+".Descriptor")
	}

	methods := map[string]string{}
	for m := range structMethods {
		methods[m] = ""
	}
	vars := map[string]string{}
	claim := func(fd goidl.FieldDesc, m string) error {
		if owner, taken := methods[m]; taken {
			if owner == "" {
				return fail("field %s: accessor %s collides with a generated method", fd.Name, m)
			}
			return fail("fields %s and %s both need accessor %s", owner, fd.Name, m)
		}
		methods[m] = fd.Name
		return nil
	}
	for _, fd := range d.AllFields() {
		f := fieldOf(fd)
		if owner, taken := vars[f.Var]; taken {
			return nil, fail("fields %s and %s both map to %s", owner, fd.Name, f.Var)
		}
		vars[f.Var] = fd.Name
		names := []string{f.Go, "Set" + f.Go}
		if f.Optional {
			names = append(names, "Clear"+f.Go)
		}
		for _, m := range names {
			if err := claim(fd, m); err != nil {
				return nil, err
			}
		}
		data.Fields = append(data.Fields, f)
		if !f.Optional {
			data.Required = append(data.Required, f)
		}
		if !r.Inherited(fd.Name) {
			data.NewFields = append(data.NewFields, f)
		}
	}
	for _, fd := range d.Fields {
		data.OwnFields = append(data.OwnFields, fieldOf(fd))
	}
	return data, nil
}

func fieldOf(fd goidl.FieldDesc) fieldData {
	f := fieldData{
		Name:     fd.Name,
		Go:       exportedName(fd.Name),
		Var:      varName(fd.Name),
		Optional: fd.Optional,
	}
	switch fd.Kind {
	case goidl.KindInteger:
		f.Type, f.Check, f.KindConst = "int64", "CheckInteger", "KindInteger"
	default:
		f.Type, f.Check, f.KindConst = "string", "CheckString", "KindString"
	}
	return f
}
