package workflows

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/PolarWolf314/closet/internal/inventory"
	"github.com/PolarWolf314/closet/internal/vault"
)

func runDoctor(t *testing.T, v *vault.Manager, configPath string) *DoctorResult {
	t.Helper()
	result, err := Doctor(context.Background(), DoctorOptions{
		ConfigPath: configPath,
		Username:   "alice",
		Vault:      v,
	})
	if err != nil {
		t.Fatalf("Doctor failed: %v", err)
	}
	return result
}

func findCheck(t *testing.T, result *DoctorResult, name string) CheckResult {
	t.Helper()
	for _, check := range result.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("No check named %q in %+v", name, result.Checks)
	return CheckResult{}
}

func TestDoctor_FreshInstall(t *testing.T) {
	v := vault.NewManager(filepath.Join(t.TempDir(), "data"), vault.WithKDFParams(testParams))

	result := runDoctor(t, v, filepath.Join(t.TempDir(), "config.toml"))
	if result.Summary.Errors != 0 || result.Summary.Warnings != 0 {
		t.Errorf("Expected a fresh install to pass, got %+v", result.Checks)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("Expected no suggestions, got %v", result.Suggestions)
	}
}

func TestDoctor_HealthyDataFile(t *testing.T) {
	v := newTestVault(t)
	openTestSession(t, v, inventory.Drawers{"Top": {{Name: "pen", Quantity: 3}}})

	result := runDoctor(t, v, filepath.Join(t.TempDir(), "config.toml"))
	check := findCheck(t, result, "Data file for alice")
	if check.Status != CheckPass {
		t.Errorf("Expected data file check to pass, got %+v", check)
	}
	if want := "Data file is format v1, Argon2id time=1 memory=64KiB threads=1"; check.Message != want {
		t.Errorf("Expected %q, got %q", want, check.Message)
	}
}

func TestDoctor_DamagedFiles(t *testing.T) {
	v := newTestVault(t)
	openTestSession(t, v, inventory.Drawers{"Top": {{Name: "pen", Quantity: 3}}})

	bobPath, err := v.Path("bob")
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	if err := os.WriteFile(bobPath, []byte("not a closet"), 0600); err != nil {
		t.Fatalf("Failed to write bob's file: %v", err)
	}
	tmp := filepath.Join(v.DataDir(), ".alice"+vault.Extension+".tmp-123")
	if err := os.WriteFile(tmp, []byte("partial"), 0600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	result := runDoctor(t, v, filepath.Join(t.TempDir(), "config.toml"))
	if check := findCheck(t, result, "Other data files"); check.Status != CheckWarning {
		t.Errorf("Expected a warning for bob's file, got %+v", check)
	}
	if check := findCheck(t, result, "Temp files"); check.Status != CheckWarning {
		t.Errorf("Expected a warning for the temp file, got %+v", check)
	}
	if result.Summary.Warnings != 2 || len(result.Suggestions) != 2 {
		t.Errorf("Expected 2 warnings with suggestions, got %+v", result)
	}
}

func TestDoctor_DamagedHeader(t *testing.T) {
	v := newTestVault(t)
	openTestSession(t, v, inventory.Drawers{"Top": {{Name: "pen", Quantity: 3}}})

	path, _ := v.Path("alice")
	blob, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read data file: %v", err)
	}
	blob[0] = 'X'
	if err := os.WriteFile(path, blob, 0600); err != nil {
		t.Fatalf("Failed to write data file: %v", err)
	}

	result := runDoctor(t, v, filepath.Join(t.TempDir(), "config.toml"))
	if check := findCheck(t, result, "Data file for alice"); check.Status != CheckError {
		t.Errorf("Expected an error for a damaged header, got %+v", check)
	}
}

func TestDoctor_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[kdf]\nthreads = 200\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	result := runDoctor(t, newTestVault(t), configPath)
	if check := findCheck(t, result, "Configuration"); check.Status != CheckError {
		t.Errorf("Expected an error for out-of-range threads, got %+v", check)
	}
}

func TestDoctor_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}
	v := newTestVault(t)
	openTestSession(t, v, inventory.Drawers{"Top": {{Name: "pen", Quantity: 3}}})

	path, _ := v.Path("alice")
	if err := os.Chmod(path, 0644); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	result := runDoctor(t, v, filepath.Join(t.TempDir(), "config.toml"))
	if check := findCheck(t, result, "Data file for alice"); check.Status != CheckWarning {
		t.Errorf("Expected a permissions warning, got %+v", check)
	}
}
