package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("%PDF-1.4\n"), 0644); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", path, err)
	}
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.pdf", true},
		{"/docs/Report.PDF", true},
		{"mixed.PdF", true},
		{"notes.txt", false},
		{"pdf", false},
		{"archive.pdf.zip", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsPDF(tt.path); got != tt.want {
				t.Errorf("IsPDF(%q) = %v; want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/docs/a.pdf", "a"},
		{"report.final.pdf", "report.final"},
		{"noext", "noext"},
		{".pdf", ".pdf"},
		{"", "output"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Stem(tt.path); got != tt.want {
				t.Errorf("Stem(%q) = %q; want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestUniqueOutputPath(t *testing.T) {
	t.Run("Free", func(t *testing.T) {
		dir := t.TempDir()
		want := filepath.Join(dir, "a_unlocked.pdf")
		if got := UniqueOutputPath(dir, "a"); got != want {
			t.Errorf("UniqueOutputPath() = %q; want %q", got, want)
		}
	})

	t.Run("Collision", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "a_unlocked.pdf"))
		want := filepath.Join(dir, "a_unlocked_1.pdf")
		if got := UniqueOutputPath(dir, "a"); got != want {
			t.Errorf("UniqueOutputPath() = %q; want %q", got, want)
		}

		touch(t, want)
		want = filepath.Join(dir, "a_unlocked_2.pdf")
		if got := UniqueOutputPath(dir, "a"); got != want {
			t.Errorf("UniqueOutputPath() = %q; want %q", got, want)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		if testing.Short() {
			t.Skip("creates ten thousand files")
		}
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "a_unlocked.pdf"))
		for i := 1; i <= MaxCollisionIndex; i++ {
			touch(t, filepath.Join(dir, fmt.Sprintf("a_unlocked_%d.pdf", i)))
		}
		want := filepath.Join(dir, "a_unlocked_overflow.pdf")
		if got := UniqueOutputPath(dir, "a"); got != want {
			t.Errorf("UniqueOutputPath() = %q; want %q", got, want)
		}
	})

	t.Run("OtherStemUnaffected", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "a_unlocked.pdf"))
		want := filepath.Join(dir, "b_unlocked.pdf")
		if got := UniqueOutputPath(dir, "b"); got != want {
			t.Errorf("UniqueOutputPath() = %q; want %q", got, want)
		}
	})
}

func TestOutputDirOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "nested", "out")
	if got := OutputDir("/src/a.pdf", override); got != override {
		t.Errorf("OutputDir() = %q; want %q", got, override)
	}
	info, err := os.Stat(override)
	if err != nil || !info.IsDir() {
		t.Errorf("override directory should have been created: %v", err)
	}
}

func TestOutputDirOverrideUnusable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	touch(t, file)
	if got := OutputDir("/src/a.pdf", file); got == file {
		t.Error("a regular file must not be used as the output directory")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x", "y")
	if err := ensureDir(dir); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}
	if err := ensureDir(dir); err != nil {
		t.Errorf("ensureDir() on existing dir failed: %v", err)
	}
}

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"darwin", "open", []string{"/tmp/a.pdf"}},
		{"windows", "cmd", []string{"/C", "start", "", "/tmp/a.pdf"}},
		{"linux", "xdg-open", []string{"/tmp/a.pdf"}},
		{"freebsd", "xdg-open", []string{"/tmp/a.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := openCommand(tt.goos, "/tmp/a.pdf")
			if name != tt.wantName {
				t.Errorf("name = %q; want %q", name, tt.wantName)
			}
			if fmt.Sprint(args) != fmt.Sprint(tt.wantArgs) {
				t.Errorf("args = %q; want %q", args, tt.wantArgs)
			}
		})
	}
}

func TestOpenPreferred(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "a.pdf")
	output := filepath.Join(dir, "a_unlocked.pdf")
	touch(t, source)

	var opened []string
	orig := starter
	starter = func(name string, args ...string) error {
		opened = append(opened, args[len(args)-1])
		return fmt.Errorf("no handler")
	}
	defer func() { starter = orig }()

	OpenPreferred(source, output)
	touch(t, output)
	OpenPreferred(source, output)
	OpenPreferred(source, "")

	want := []string{source, output, source}
	if fmt.Sprint(opened) != fmt.Sprint(want) {
		t.Errorf("opened = %v; want %v", opened, want)
	}
}
