package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
install_dir: agents/skills
skills:
  - slug: code-review
    version: ^1.0.0
  - slug: changelog
    source: https://registry.example.com
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.InstallDir != "agents/skills" {
		t.Fatalf("install dir = %q", cfg.InstallDir)
	}
	if len(cfg.Skills) != 2 {
		t.Fatalf("skills = %+v", cfg.Skills)
	}
	if e := cfg.FindSkill("code-review"); e == nil || e.Version != "^1.0.0" {
		t.Fatalf("FindSkill = %+v", e)
	}
	if got := cfg.InstallPath(dir); got != filepath.Join(dir, "agents/skills") {
		t.Fatalf("InstallPath = %q", got)
	}
}

func TestLoadConfigDefaultsInstallDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "skills: []\n")
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InstallDir != DefaultInstallDir {
		t.Fatalf("install dir = %q, want default", cfg.InstallDir)
	}
}

func TestLoadConfigEnvOverridesRegistry(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "registry: /from/yaml\nskills: []\n")
	t.Setenv("QUILL_REGISTRY", "/from/env")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Registry != "/from/env" {
		t.Fatalf("registry = %q, want env override", cfg.Registry)
	}
}

func TestLoadConfigReadsDotenv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "skills: []\n")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("QUILL_REGISTRY=/from/dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QUILL_REGISTRY", "") // godotenv does not override, so clear first
	os.Unsetenv("QUILL_REGISTRY")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Registry != "/from/dotenv" {
		t.Fatalf("registry = %q, want dotenv value", cfg.Registry)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in this environment")
	}
	if got := ExpandPath("~/registry"); got != filepath.Join(home, "registry") {
		t.Fatalf("ExpandPath = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Fatalf("absolute path changed: %q", got)
	}
	if got := ExpandPath("~user/x"); got != "~user/x" {
		t.Fatalf("~user form should be untouched: %q", got)
	}
}

func TestAddSkillRejectsDuplicate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.AddSkill(SkillEntry{Slug: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := cfg.AddSkill(SkillEntry{Slug: "a"}); err == nil {
		t.Fatal("duplicate slug accepted")
	}
}

func TestRemoveSkill(t *testing.T) {
	cfg := DefaultConfig()
	_ = cfg.AddSkill(SkillEntry{Slug: "a"})
	if !cfg.RemoveSkill("a") {
		t.Fatal("RemoveSkill(a) = false")
	}
	if cfg.RemoveSkill("a") {
		t.Fatal("second RemoveSkill(a) = true")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	_ = cfg.AddSkill(SkillEntry{Slug: "code-review", Version: "~1.2.0"})
	if err := SaveConfig(dir, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if e := got.FindSkill("code-review"); e == nil || e.Version != "~1.2.0" {
		t.Fatalf("round trip lost entry: %+v", got.Skills)
	}
}
