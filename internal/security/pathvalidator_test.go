package security

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCleanInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/home/user/Downloads", "/home/user/Downloads"},
		{"  /tmp/inbox \n", "/tmp/inbox"},
		{`"/tmp/with space"`, "/tmp/with space"},
		{"'/tmp/single'", "/tmp/single"},
		{` "/tmp/both" `, "/tmp/both"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanInput(tt.in); got != tt.want {
				t.Errorf("CleanInput(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateTarget(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	pv := NewPathValidator()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"existing directory", dir, nil},
		{"missing path", filepath.Join(dir, "missing"), ErrNotExist},
		{"empty path", "", ErrNotExist},
		{"regular file", file, ErrNotDirectory},
		{"root", "/", ErrProtected},
		{"usr", "/usr", ErrProtected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.path != "" && tt.wantErr == ErrProtected {
				if _, err := os.Stat(tt.path); err != nil {
					t.Skipf("%s not present: %v", tt.path, err)
				}
			}

			got, err := pv.ValidateTarget(tt.path)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateTarget(%q) unexpected error: %v", tt.path, err)
				}
				if !filepath.IsAbs(got) {
					t.Errorf("ValidateTarget(%q) = %q, want absolute path", tt.path, got)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTarget(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTargetRelative(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "inbox"), 0755); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	got, err := NewPathValidator().ValidateTarget("inbox")
	if err != nil {
		t.Fatalf("ValidateTarget failed: %v", err)
	}
	if filepath.Base(got) != "inbox" || !filepath.IsAbs(got) {
		t.Errorf("ValidateTarget(inbox) = %q", got)
	}
}

func TestValidateTargetSymlinkToProtected(t *testing.T) {
	link := filepath.Join(t.TempDir(), "sneaky")
	if err := os.Symlink("/usr", link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if _, err := os.Stat("/usr"); err != nil {
		t.Skip("/usr not present")
	}

	_, err := NewPathValidator().ValidateTarget(link)
	if !errors.Is(err, ErrProtected) {
		t.Errorf("expected ErrProtected for symlink to /usr, got %v", err)
	}
}

func TestIsProtectedPath(t *testing.T) {
	pv := NewPathValidator()

	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/etc", true},
		{"/etc/", true},
		{"/var/tmp/inbox", false},
		{"/home/user/Downloads", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := pv.IsProtectedPath(tt.path); got != tt.want {
				t.Errorf("IsProtectedPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestAddProtectedPath(t *testing.T) {
	dir := t.TempDir()
	pv := NewPathValidator()
	pv.AddProtectedPath(dir + "/")

	if !pv.IsProtectedPath(dir) {
		t.Errorf("custom protected path %s not recognized", dir)
	}
	if _, err := pv.ValidateTarget(dir); !errors.Is(err, ErrProtected) {
		t.Errorf("expected ErrProtected, got %v", err)
	}
}
