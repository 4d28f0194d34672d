package gen

import "testing"

func TestNames(t *testing.T) {
	cases := []struct {
		in, pkg, exported, v string
	}{
		{"Name_stored_", "namestored", "NameStored", "nameStored"},
		{"LengthInBytes", "lengthinbytes", "LengthInBytes", "lengthInBytes"},
		{"byte_count", "bytecount", "ByteCount", "byteCount"},
		{"type", "typepkg", "Type", "type_"},
		{"_9lives", "x9lives", "X9lives", "x9lives"},
	}
	for _, tc := range cases {
		if got := packageName(tc.in); got != tc.pkg {
			t.Errorf("packageName(%q) = %q, want %q", tc.in, got, tc.pkg)
		}
		if got := exportedName(tc.in); got != tc.exported {
			t.Errorf("exportedName(%q) = %q, want %q", tc.in, got, tc.exported)
		}
		if got := varName(tc.in); got != tc.v {
			t.Errorf("varName(%q) = %q, want %q", tc.in, got, tc.v)
		}
	}
	if got := dirOf("idltest.phase", "name"); got != "idltest/phase/name" {
		t.Errorf("dirOf = %q", got)
	}
	if got := dirOf("", "name"); got != "name" {
		t.Errorf("dirOf without namespace = %q", got)
	}
}
