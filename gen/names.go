package gen

import (
	"go/token"
	"strings"
	"unicode"
)

// packageName derives the Go package of a type: its letters and digits,
// lowercased ("Name_stored_" -> "namestored").
func packageName(typeName string) string {
	var b strings.Builder
	for _, r := range typeName {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	s := b.String()
	if s == "" || !unicode.IsLetter([]rune(s)[0]) {
		s = "x" + s
	}
	if token.IsKeyword(s) {
		s += "pkg"
	}
	return s
}

// exportedName joins the underscore separated parts of s with each part
// capitalised ("Name_stored_" -> "NameStored", "byte_count" -> "ByteCount").
func exportedName(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	out := b.String()
	if out == "" || !unicode.IsLetter([]rune(out)[0]) {
		out = "X" + out
	}
	return out
}

// varName is the unexported struct field holding s.
func varName(s string) string {
	r := []rune(exportedName(s))
	r[0] = unicode.ToLower(r[0])
	v := string(r)
	if token.IsKeyword(v) {
		v += "_"
	}
	return v
}

// dirOf maps a namespace and package to a slash separated directory.
func dirOf(namespace, pkg string) string {
	if namespace == "" {
		return pkg
	}
	return strings.ReplaceAll(namespace, ".", "/") + "/" + pkg
}

// Identifiers generated code declares at package scope or uses as locals.
var (
	packageScope = map[string]bool{
		"Struct": true, "New": true, "Decode": true, "Descriptor": true,
		"PackageName": true, "ClassName": true, "FullClassName": true,
		"Fingerprint": true, "NewRegistry": true, "Register": true,
	}
	structMethods = map[string]bool{
		"PackageName": true, "ClassName": true, "FullClassName": true,
		"Descriptor": true, "Set": true, "Get": true, "Validate": true,
		"Serialize": true,
	}
	fileScope = map[string]bool{
		"goidl": true, "x": true, "n": true, "ok": true, "err": true, "v": true,
		"iss": true, "out": true, "r": true, "s": true, "opts": true,
		"field": true, "string": true, "int64": true, "any": true,
		"error": true, "bool": true, "nil": true, "append": true, "len": true,
	}
)
