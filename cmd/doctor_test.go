package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/closet/internal/workflows"
)

// withDoctorExit records the exit code doctor asks for instead of exiting.
func withDoctorExit(t *testing.T) *int {
	t.Helper()
	code := -1
	SetDoctorExitFunc(func(c int) { code = c })
	t.Cleanup(func() { SetDoctorExitFunc(os.Exit) })
	return &code
}

func TestDoctor_Healthy(t *testing.T) {
	setupTestEnvironment(t)
	mustRun(t, "pw1\n", "drawer", "create", "Top", "pen=3")
	code := withDoctorExit(t)

	output := mustRun(t, "", "doctor")
	if *code != -1 {
		t.Errorf("Expected no exit call, got %d", *code)
	}
	if !strings.Contains(output, "Data file is format v1") || !strings.Contains(output, "Summary: 6 passed") {
		t.Errorf("Unexpected doctor output: %s", output)
	}
}

func TestDoctor_WarningsJSON(t *testing.T) {
	env := setupTestEnvironment(t)
	mustRun(t, "pw1\n", "drawer", "create", "Top", "pen=3")
	if err := os.WriteFile(filepath.Join(env.dataDir, ".alice.closet.tmp-1"), []byte("x"), 0600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	code := withDoctorExit(t)

	output := mustRun(t, "", "doctor", "--json")
	if *code != 1 {
		t.Errorf("Expected exit code 1 for warnings, got %d", *code)
	}

	// CheckStatus marshals to a string, so only the summary is decoded.
	var result struct {
		Summary workflows.DoctorSummary `json:"summary"`
	}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Expected JSON output, got %v: %s", err, output)
	}
	if result.Summary.Warnings != 1 {
		t.Errorf("Expected 1 warning, got %+v", result.Summary)
	}
}
