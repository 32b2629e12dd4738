package pyproject

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danieljhkim/workspyce/internal/fsops"
)

const sample = `# managed by uv
[project]
name = "coding-agent"
version = "0.1.0"  # keep in sync
dependencies = [
    "shared==0.1.0",
]

[tool.other]
version = "0.1.0"
`

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLocate(t *testing.T) {
	fs := fsops.NewRealFS()
	root := t.TempDir()
	pkg := filepath.Join(root, "packages", "coding_agent")
	if err := os.MkdirAll(filepath.Join(pkg, "src", "agent"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{filepath.Join(root, FileName), filepath.Join(pkg, FileName)} {
		if err := os.WriteFile(p, []byte(sample), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"nested file", filepath.Join(pkg, "src", "agent", "hello.py"), pkg},
		{"package root itself", pkg, pkg},
		{"file outside packages", filepath.Join(root, "README.md"), root},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Locate(fs, tt.path)
			if err != nil {
				t.Fatalf("Locate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Locate(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLocate_Relative(t *testing.T) {
	fs := fsops.NewRealFS()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "packages", "foo"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "packages", "foo", FileName), []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	chdir(t, root)

	got, err := Locate(fs, "packages/foo/x.py")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if got != filepath.Join("packages", "foo") {
		t.Errorf("Locate = %q", got)
	}
}

func TestLocate_NotFound(t *testing.T) {
	fs := fsops.NewRealFS()
	dir := t.TempDir()
	chdir(t, dir)

	_, err := Locate(fs, "nowhere/file.py")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Locate error = %v, want ErrNotFound", err)
	}
}

func TestReadProject(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Project
		wantErr bool
	}{
		{
			name: "project table",
			data: sample,
			want: Project{Name: "coding-agent", Version: "0.1.0"},
		},
		{
			name: "poetry fallback",
			data: "[tool.poetry]\nname = \"legacy\"\nversion = \"2.0.0\"\n",
			want: Project{Name: "legacy", Version: "2.0.0"},
		},
		{
			name: "project wins over poetry",
			data: "[project]\nname = \"a\"\nversion = \"1.0.0\"\n[tool.poetry]\nname = \"b\"\nversion = \"9.9.9\"\n",
			want: Project{Name: "a", Version: "1.0.0"},
		},
		{
			name:    "malformed toml",
			data:    "[project\nname = ",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadProject([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadProject error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" && !tt.wantErr {
				t.Errorf("ReadProject mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadNameAndVersion_Missing(t *testing.T) {
	if _, err := ReadName([]byte("[project]\nversion = \"1.0.0\"\n")); !errors.Is(err, ErrMissingField) {
		t.Errorf("ReadName error = %v, want ErrMissingField", err)
	}
	if _, err := ReadVersion([]byte("[project]\nname = \"x\"\n")); !errors.Is(err, ErrMissingField) {
		t.Errorf("ReadVersion error = %v, want ErrMissingField", err)
	}
	name, err := ReadName([]byte(sample))
	if err != nil || name != "coding-agent" {
		t.Errorf("ReadName = %q, %v", name, err)
	}
}

func TestSetVersion(t *testing.T) {
	got, err := SetVersion([]byte(sample), "0.1.0", "0.2.0")
	if err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	want := `# managed by uv
[project]
name = "coding-agent"
version = "0.2.0"  # keep in sync
dependencies = [
    "shared==0.1.0",
]

[tool.other]
version = "0.1.0"
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("SetVersion mismatch (-want +got):\n%s", diff)
	}
}

func TestSetVersion_Variants(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "literal string keeps quote style",
			data: "[project]\nname = 'x'\nversion = '1.0.0'\n",
			want: "[project]\nname = 'x'\nversion = '1.0.1'\n",
		},
		{
			name: "dotted key at top level",
			data: "project.name = \"x\"\nproject.version = \"1.0.0\"\n",
			want: "project.name = \"x\"\nproject.version = \"1.0.1\"\n",
		},
		{
			name: "poetry fallback",
			data: "[tool.poetry]\nname = \"x\"\nversion = \"1.0.0\"\n",
			want: "[tool.poetry]\nname = \"x\"\nversion = \"1.0.1\"\n",
		},
		{
			name: "version declared after other tables",
			data: "[tool.uv]\nversion = \"1.0.0\"\n[project]\nversion = \"1.0.0\"\n",
			want: "[tool.uv]\nversion = \"1.0.0\"\n[project]\nversion = \"1.0.1\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SetVersion([]byte(tt.data), "1.0.0", "1.0.1")
			if err != nil {
				t.Fatalf("SetVersion failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("SetVersion =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestSetVersion_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		old  string
	}{
		{"no version", "[project]\nname = \"x\"\n", ""},
		{"stale expected version", "[project]\nversion = \"1.0.0\"\n", "0.9.0"},
		{"non string version", "[project]\nversion = 1\n", ""},
		{"malformed document", "[project]\nversion = \n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SetVersion([]byte(tt.data), tt.old, "2.0.0"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLocate_FromDescriptorFile(t *testing.T) {
	fs := fsops.NewRealFS()
	pkg := filepath.Join(t.TempDir(), "packages", "bar")
	if err := os.MkdirAll(pkg, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pkg, FileName), []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Locate(fs, filepath.Join(pkg, FileName))
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if got != pkg {
		t.Errorf("Locate = %q, want %q", got, pkg)
	}
}
