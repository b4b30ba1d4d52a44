// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNilFileSet(t *testing.T) {
	fset := (FileSet)(nil)
	if got, ok := fset.Get("foo", "bar"); got != "" || ok {
		t.Errorf("Get(...) = %q, %t; want \"\", false", got, ok)
	}
	if got := fset.Find("foo", "bar"); len(got) > 0 {
		t.Errorf("Find(...) = %q; want empty", got)
	}
	if got := fset.Sections(); len(got) > 0 {
		t.Errorf("Sections(...) = %q; want empty", got)
	}
	if got := fset.Section("foo"); len(got) > 0 {
		t.Errorf("Section(...) = %q; want empty", got)
	}
}

func TestFileSetAccess(t *testing.T) {
	tests := []struct {
		name     string
		sources  []string
		section  string
		key      string
		wantGet  string
		wantOK   bool
		wantFind []string
	}{
		{
			name:     "ExistsInFirst",
			sources:  []string{"[s]\nFOO=bar\n", "[s]\nBAZ=quux\n"},
			section:  "s",
			key:      "FOO",
			wantGet:  "bar",
			wantOK:   true,
			wantFind: []string{"bar"},
		},
		{
			name:     "ExistsInSecond",
			sources:  []string{"[s]\nFOO=bar\n", "[s]\nBAZ=quux\n"},
			section:  "s",
			key:      "BAZ",
			wantGet:  "quux",
			wantOK:   true,
			wantFind: []string{"quux"},
		},
		{
			name:     "DoesNotExist",
			sources:  []string{"[s]\nFOO=bar\n", "[s]\nBAZ=quux\n"},
			section:  "s",
			key:      "bork",
			wantFind: []string{},
		},
		{
			name:     "MultipleValues",
			sources:  []string{"[s]\nFOO=bar\n", "[s]\nFOO=baz\n"},
			section:  "s",
			key:      "FOO",
			wantGet:  "bar",
			wantOK:   true,
			wantFind: []string{"baz", "bar"},
		},
		{
			name:     "RepeatedInOneFile",
			sources:  []string{"[s]\nFOO=bar\nFOO=baz\n", "[s]\nFOO=quux\n"},
			section:  "s",
			key:      "FOO",
			wantGet:  "baz",
			wantOK:   true,
			wantFind: []string{"quux", "bar", "baz"},
		},
		{
			name:     "EmptyValue",
			sources:  []string{"[s]\nFOO=\n", "[s]\nFOO=bar\n"},
			section:  "s",
			key:      "FOO",
			wantGet:  "",
			wantOK:   true,
			wantFind: []string{"bar", ""},
		},
		{
			name: "Section",
			sources: []string{
				"[foo]\n" +
					"bar=baz\n" +
					"[xyzzy]\n" +
					"bork=bork\n",
				"[foo]\n" +
					"something=else\n",
			},
			section:  "foo",
			key:      "bar",
			wantGet:  "baz",
			wantOK:   true,
			wantFind: []string{"baz"},
		},
		{
			name:     "MissingFile",
			sources:  []string{"", "[s]\nFOO=bar\n"},
			section:  "s",
			key:      "FOO",
			wantGet:  "bar",
			wantOK:   true,
			wantFind: []string{"bar"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fset := parseSources(t, test.sources)
			got, ok := fset.Get(test.section, test.key)
			if got != test.wantGet || ok != test.wantOK {
				t.Errorf("fset.Get(%q, %q) = %q, %t; want %q, %t", test.section, test.key, got, ok, test.wantGet, test.wantOK)
			}
			gotFind := fset.Find(test.section, test.key)
			if diff := cmp.Diff(test.wantFind, gotFind, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("fset.Find(%q, %q) (-want +got):\n%s", test.section, test.key, diff)
			}
			gotFind = fset.Section(test.section)[test.key]
			if diff := cmp.Diff(test.wantFind, gotFind, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("fset.Section(%q)[%q] (-want +got):\n%s", test.section, test.key, diff)
			}
		})
	}
}

func TestFileSetSections(t *testing.T) {
	fset := parseSources(t, []string{
		"[b]\nx=1\n[empty]\n[c]\ny=2\n",
		"",
		"[a]\nz=3\n[b]\nw=4\n",
	})
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, fset.Sections()); diff != "" {
		t.Errorf("Sections() (-want +got):\n%s", diff)
	}
}

// parseSources parses each source into a document. Empty sources become nil
// documents, the same as a missing file in ParseFiles.
func parseSources(tb testing.TB, sources []string) FileSet {
	tb.Helper()
	var fset FileSet
	for _, src := range sources {
		if src == "" {
			fset = append(fset, nil)
			continue
		}
		d, err := Parse(strings.NewReader(src), nil)
		if err != nil {
			tb.Fatal(err)
		}
		fset = append(fset, d)
	}
	return fset
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	user := filepath.Join(dir, "user.ini")
	system := filepath.Join(dir, "system.ini")
	missing := filepath.Join(dir, "missing.ini")
	if err := os.WriteFile(user, []byte("[core]\neditor=vim\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(system, []byte("[core]\neditor=nano\npager=less\n"), 0o666); err != nil {
		t.Fatal(err)
	}

	fset, err := ParseFiles(nil, user, missing, system)
	if err != nil {
		t.Fatal(err)
	}
	if len(fset) != 3 {
		t.Fatalf("len(ParseFiles(...)) = %d; want 3", len(fset))
	}
	if fset[1] != nil {
		t.Errorf("fset[1] = %v; want nil for missing file", fset[1])
	}
	if got, _ := fset.Get("core", "editor"); got != "vim" {
		t.Errorf("Get(\"core\", \"editor\") = %q; want \"vim\"", got)
	}
	if got, _ := fset.Get("core", "pager"); got != "less" {
		t.Errorf("Get(\"core\", \"pager\") = %q; want \"less\"", got)
	}
}

func TestParseFilesError(t *testing.T) {
	dir := t.TempDir()
	_, err := ParseFiles(nil, filepath.Join(dir, "missing.ini"), dir)
	if err == nil {
		t.Error("ParseFiles on a directory did not return an error")
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.ini"), nil)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ParseFile(missing) error = %v; want %v", err, fs.ErrNotExist)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.ini")
	if err := os.WriteFile(path, []byte("stale contents\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	d := New()
	d.Section("Database").Set("host", "localhost", "")
	d.Section("Database").Set("port", "5432", "")
	if err := WriteFile(path, d, &WriteOptions{Spacing: true}); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	const want = "[Database]\nhost = localhost\nport = 5432\n\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("file contents (-want +got):\n%s", diff)
	}

	reparsed, err := ParseFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(dump(d), dump(reparsed)); diff != "" {
		t.Errorf("ParseFile(WriteFile(d)) (-want +got):\n%s", diff)
	}
}
