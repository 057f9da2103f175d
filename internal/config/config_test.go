package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DocumentMaxChars != DefaultConfig().DocumentMaxChars {
		t.Fatalf("DocumentMaxChars = %d, want %d", cfg.DocumentMaxChars, DefaultConfig().DocumentMaxChars)
	}
	if cfg.MaxClauses != DefaultConfig().MaxClauses {
		t.Fatalf("MaxClauses = %d, want %d", cfg.MaxClauses, DefaultConfig().MaxClauses)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"document_max_chars": 500}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DocumentMaxChars != 500 {
		t.Fatalf("DocumentMaxChars = %d, want %d", cfg.DocumentMaxChars, 500)
	}
	// Untouched scalars keep defaults
	if cfg.MaxClauses != DefaultConfig().MaxClauses {
		t.Fatalf("MaxClauses = %d, want default", cfg.MaxClauses)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{not json}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestLoad_DisabledTools(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"disabled_tools": ["template_ingest", "document_redflags"]}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.DisabledTools) != 2 {
		t.Fatalf("DisabledTools length = %d, want 2", len(cfg.DisabledTools))
	}
	if cfg.DisabledTools[0] != "template_ingest" {
		t.Errorf("DisabledTools[0] = %q, want %q", cfg.DisabledTools[0], "template_ingest")
	}
	if cfg.DisabledTools[1] != "document_redflags" {
		t.Errorf("DisabledTools[1] = %q, want %q", cfg.DisabledTools[1], "document_redflags")
	}
}

func TestLoad_DisabledToolsEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.DisabledTools) != 0 {
		t.Fatalf("DisabledTools = %v, want nil or empty", cfg.DisabledTools)
	}
}

func TestLoadWithRepo_BothPresent(t *testing.T) {
	globalDir := t.TempDir()
	repoRoot := t.TempDir()

	// Global config
	globalConfig := `{"document_max_chars": 8000, "disabled_tools": ["template_ingest"]}`
	if err := os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// Repo config at repoRoot/.lexgate/config.json
	repoDir := filepath.Join(repoRoot, ".lexgate")
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	repoConfig := `{"document_max_chars": 5000, "disabled_tools": ["document_redflags"]}`
	if err := os.WriteFile(filepath.Join(repoDir, "config.json"), []byte(repoConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithRepo(globalDir, repoRoot)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	// Repo overrides scalar
	if cfg.DocumentMaxChars != 5000 {
		t.Errorf("DocumentMaxChars = %d, want 5000 (repo override)", cfg.DocumentMaxChars)
	}

	// Arrays merged
	if len(cfg.DisabledTools) != 2 {
		t.Errorf("DisabledTools length = %d, want 2", len(cfg.DisabledTools))
	}
}

func TestLoadWithRepo_OnlyGlobal(t *testing.T) {
	globalDir := t.TempDir()
	repoDir := t.TempDir() // No config file

	globalConfig := `{"document_max_chars": 8000, "rules_path": "/etc/lexgate/rules.json"}`
	if err := os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithRepo(globalDir, repoDir)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	if cfg.DocumentMaxChars != 8000 {
		t.Errorf("DocumentMaxChars = %d, want 8000", cfg.DocumentMaxChars)
	}
	if cfg.RulesPath != "/etc/lexgate/rules.json" {
		t.Errorf("RulesPath = %q", cfg.RulesPath)
	}
}

func TestLoadWithRepo_OnlyRepo(t *testing.T) {
	globalDir := t.TempDir() // No config file
	repoRoot := t.TempDir()

	repoDir := filepath.Join(repoRoot, ".lexgate")
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	repoConfig := `{"disabled_tools": ["document_redflags", "template_list"]}`
	if err := os.WriteFile(filepath.Join(repoDir, "config.json"), []byte(repoConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithRepo(globalDir, repoRoot)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	// Default value preserved
	if cfg.DocumentMaxChars != DefaultConfig().DocumentMaxChars {
		t.Errorf("DocumentMaxChars = %d, want default", cfg.DocumentMaxChars)
	}
	if len(cfg.DisabledTools) != 2 {
		t.Errorf("DisabledTools length = %d, want 2", len(cfg.DisabledTools))
	}
}

func TestLoadWithRepo_NeitherPresent(t *testing.T) {
	globalDir := t.TempDir()
	repoDir := t.TempDir()

	cfg, err := LoadWithRepo(globalDir, repoDir)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	// All defaults
	if cfg.DocumentMaxChars != DefaultConfig().DocumentMaxChars {
		t.Errorf("DocumentMaxChars = %d, want default", cfg.DocumentMaxChars)
	}
	if len(cfg.DisabledTools) != 0 {
		t.Errorf("DisabledTools = %v, want empty", cfg.DisabledTools)
	}
}

func TestMerge_ScalarOverride(t *testing.T) {
	base := &Config{DocumentMaxChars: 10000, DBMaxOpenConns: 5, KnowledgePath: "/kb/rules.md"}
	overlay := &Config{DocumentMaxChars: 5000} // DBMaxOpenConns is 0 (zero value)

	result := Merge(base, overlay)

	if result.DocumentMaxChars != 5000 {
		t.Errorf("DocumentMaxChars = %d, want 5000 (overlay)", result.DocumentMaxChars)
	}
	if result.DBMaxOpenConns != 5 {
		t.Errorf("DBMaxOpenConns = %d, want 5 (base, overlay is zero)", result.DBMaxOpenConns)
	}
	if result.KnowledgePath != "/kb/rules.md" {
		t.Errorf("KnowledgePath = %q, want base value", result.KnowledgePath)
	}
}

func TestMerge_ArrayMergeDedup(t *testing.T) {
	base := &Config{DisabledTools: []string{"template_ingest", "document_redflags"}}
	overlay := &Config{DisabledTools: []string{"document_redflags", "template_list"}}

	result := Merge(base, overlay)

	if len(result.DisabledTools) != 3 {
		t.Errorf("DisabledTools length = %d, want 3 (merged, deduped)", len(result.DisabledTools))
	}

	// Check all three are present
	has := make(map[string]bool)
	for _, s := range result.DisabledTools {
		has[s] = true
	}
	for _, want := range []string{"template_ingest", "document_redflags", "template_list"} {
		if !has[want] {
			t.Errorf("DisabledTools missing %q", want)
		}
	}
}

func TestFindRepoConfig_InCurrentDir(t *testing.T) {
	tmpDir := t.TempDir()
	repoDir := filepath.Join(tmpDir, ".lexgate")
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	configPath := filepath.Join(repoDir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	found := FindRepoConfig(tmpDir)
	if found != configPath {
		t.Errorf("FindRepoConfig() = %q, want %q", found, configPath)
	}
}

func TestFindRepoConfig_InParentDir(t *testing.T) {
	// Create: tmpDir/.lexgate/config.json
	//         tmpDir/subdir/deeper/
	tmpDir := t.TempDir()
	repoDir := filepath.Join(tmpDir, ".lexgate")
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	configPath := filepath.Join(repoDir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	subdir := filepath.Join(tmpDir, "subdir", "deeper")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	// Start from subdir, should find config in parent
	found := FindRepoConfig(subdir)
	if found != configPath {
		t.Errorf("FindRepoConfig() = %q, want %q", found, configPath)
	}
}

func TestFindRepoConfig_NotFound(t *testing.T) {
	tmpDir := t.TempDir()
	// No .lexgate directory

	found := FindRepoConfig(tmpDir)
	if found != "" {
		t.Errorf("FindRepoConfig() = %q, want empty string", found)
	}
}

func TestLoadWithRepo_WalksUpward(t *testing.T) {
	// Create: tmpDir/.lexgate/config.json with disabled_tools
	//         tmpDir/subdir/
	tmpDir := t.TempDir()
	globalDir := t.TempDir() // Separate global dir

	repoDir := filepath.Join(tmpDir, ".lexgate")
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	repoConfig := `{"disabled_tools": ["template_ingest"]}`
	if err := os.WriteFile(filepath.Join(repoDir, "config.json"), []byte(repoConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	subdir := filepath.Join(tmpDir, "subdir")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	// Load from subdir, should find repo config in parent
	cfg, err := LoadWithRepo(globalDir, subdir)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "template_ingest" {
		t.Errorf("DisabledTools = %v, want [template_ingest]", cfg.DisabledTools)
	}
}
