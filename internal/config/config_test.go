package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Addr != "127.0.0.1:4000" {
		t.Errorf("Addr = %q, want 127.0.0.1:4000", cfg.Addr)
	}
	if cfg.RootDir != "." {
		t.Errorf("RootDir = %q, want .", cfg.RootDir)
	}
	if cfg.DevExtensions {
		t.Error("DevExtensions should default to off")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sufficient.toml")
	body := "addr = \"0.0.0.0:8080\"\nroot_dir = \"/srv/www\"\ndev_extensions = true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := LoadFile(path, cfg); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Addr != "0.0.0.0:8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.RootDir != "/srv/www" {
		t.Errorf("RootDir = %q", cfg.RootDir)
	}
	if !cfg.DevExtensions {
		t.Error("DevExtensions not loaded")
	}
	// Keys absent from the file keep their defaults.
	if cfg.MimeTypes != "" {
		t.Errorf("MimeTypes = %q, want empty", cfg.MimeTypes)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg := Default()
	if err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"), cfg); err == nil {
		t.Error("LoadFile on a missing file should fail")
	}
}

func TestFinalize(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	if err := os.Mkdir(real, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(real, link); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{Addr: "127.0.0.1:4000", RootDir: link}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	want, err := filepath.EvalSymlinks(real)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RootDir != want {
		t.Errorf("RootDir = %q, want canonical %q", cfg.RootDir, want)
	}
}

func TestFinalizeErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		cfg := &Config{RootDir: filepath.Join(t.TempDir(), "absent")}
		if err := cfg.Finalize(); err == nil {
			t.Error("Finalize should fail for a missing root")
		}
	})

	t.Run("root is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "f")
		if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg := &Config{RootDir: file}
		if err := cfg.Finalize(); err == nil {
			t.Error("Finalize should fail when root is a regular file")
		}
	})
}
