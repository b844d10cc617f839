package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateWithin(t *testing.T) {
	tmpDir := t.TempDir()

	safeDir := filepath.Join(tmpDir, "reports")
	otherDir := filepath.Join(tmpDir, "other")
	for _, d := range []string{safeDir, otherDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatalf("MkdirAll(%s) error = %v", d, err)
		}
	}
	link := filepath.Join(safeDir, "escape")
	if err := os.Symlink(otherDir, link); err != nil {
		t.Fatalf("Symlink() error = %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "file in directory", path: filepath.Join(safeDir, "run.png")},
		{name: "nested file not yet created", path: filepath.Join(safeDir, "a", "b", "run.html")},
		{name: "directory itself", path: safeDir},
		{name: "dot-dot escape", path: filepath.Join(safeDir, "..", "run.png"), wantErr: true},
		{name: "sibling directory", path: filepath.Join(otherDir, "run.png"), wantErr: true},
		{name: "symlinked directory", path: filepath.Join(link, "run.png"), wantErr: true},
		{name: "absolute system path", path: "/etc/passwd", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWithin(tc.path, safeDir)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateWithin(%q) error = %v, wantErr %v", tc.path, err, tc.wantErr)
			}
		})
	}
}

func TestValidateWithin_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	if err := ValidateWithin(filepath.Join(missing, "x.png"), missing); err == nil {
		t.Error("expected error for a directory that does not exist")
	}
}

func TestValidateOutputPath(t *testing.T) {
	if err := ValidateOutputPath("out/run.png"); err != nil {
		t.Errorf("relative path rejected: %v", err)
	}
	if err := ValidateOutputPath(filepath.Join(os.TempDir(), "run.png")); err != nil {
		t.Errorf("temp path rejected: %v", err)
	}
	if err := ValidateOutputPath("/etc/deadreckon.png"); err == nil {
		t.Error("expected /etc path to be rejected")
	}
}
