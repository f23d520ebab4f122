package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"

	"github.com/PolarWolf314/closet/internal/audit"
	"github.com/PolarWolf314/closet/internal/configs"
	"github.com/PolarWolf314/closet/internal/vault"

	"github.com/bmatcuk/doublestar/v4"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct {
	// ConfigPath is the config.toml to check.
	ConfigPath string

	// Username whose data file is checked in detail.
	Username string

	Vault *vault.Manager
}

// Doctor runs health checks that need no password.
//
// The doctor workflow checks:
//   - Config file validity
//   - Data directory existence and permissions
//   - The user's data file permissions and header
//   - Headers of every other data file
//   - Temp files left by interrupted saves
//   - Audit log permissions
func Doctor(ctx context.Context, opts DoctorOptions) (*DoctorResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Vault == nil {
		return nil, fmt.Errorf("no vault configured")
	}

	checks := []func(DoctorOptions) CheckResult{
		checkConfig,
		checkDataDir,
		checkDataFile,
		checkOtherDataFiles,
		checkLeftoverTempFiles,
		checkAuditLog,
	}

	var results []CheckResult
	for _, check := range checks {
		results = append(results, check(opts))
	}

	summary := calculateDoctorSummary(results)

	// Collect suggestions (deduplicated).
	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     summary,
		Suggestions: suggestions,
	}, nil
}

// checkConfig checks that the config file parses and its KDF settings are in range.
func checkConfig(opts DoctorOptions) CheckResult {
	if _, err := os.Stat(opts.ConfigPath); errors.Is(err, fs.ErrNotExist) {
		return CheckResult{
			Name:    "Configuration",
			Status:  CheckPass,
			Message: "No config file, using defaults",
		}
	}

	config, err := configs.LoadConfig(opts.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       "Configuration",
			Status:     CheckError,
			Message:    "Config file is invalid: " + err.Error(),
			Suggestion: "Fix " + opts.ConfigPath + " or recreate it with 'closet config init --force'",
		}
	}
	if _, err := config.KDFParams(); err != nil {
		return CheckResult{
			Name:       "Configuration",
			Status:     CheckError,
			Message:    err.Error(),
			Suggestion: "Fix the [kdf] section of " + opts.ConfigPath,
		}
	}

	return CheckResult{
		Name:    "Configuration",
		Status:  CheckPass,
		Message: "Config file is valid",
	}
}

// checkDataDir checks the data directory exists and is private.
func checkDataDir(opts DoctorOptions) CheckResult {
	dir := opts.Vault.DataDir()
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return CheckResult{
			Name:    "Data directory",
			Status:  CheckPass,
			Message: "Data directory not created yet",
		}
	}
	if err != nil {
		return CheckResult{
			Name:    "Data directory",
			Status:  CheckError,
			Message: "Cannot read data directory: " + err.Error(),
		}
	}
	if !info.IsDir() {
		return CheckResult{
			Name:       "Data directory",
			Status:     CheckError,
			Message:    dir + " is not a directory",
			Suggestion: "Point --data-dir or CLOSET_DATA_DIR at a directory",
		}
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0077 != 0 {
		return CheckResult{
			Name:       "Data directory",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Data directory is readable by others (permissions %04o)", info.Mode().Perm()),
			Suggestion: "Run 'chmod 700 " + dir + "'",
		}
	}

	return CheckResult{
		Name:    "Data directory",
		Status:  CheckPass,
		Message: "Data directory is private",
	}
}

// checkDataFile checks the user's data file permissions and header.
func checkDataFile(opts DoctorOptions) CheckResult {
	name := "Data file for " + opts.Username
	path, err := opts.Vault.Path(opts.Username)
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: err.Error()}
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return CheckResult{
			Name:    name,
			Status:  CheckPass,
			Message: "No data file for " + opts.Username + " yet",
		}
	}
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: "Cannot read data file: " + err.Error()}
	}

	header, err := opts.Vault.Header(opts.Username)
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    "Data file header is damaged: " + err.Error(),
			Suggestion: "Restore " + path + " from a backup",
		}
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0077 != 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Data file is readable by others (permissions %04o)", info.Mode().Perm()),
			Suggestion: "Run 'chmod 600 " + path + "'",
		}
	}

	return CheckResult{
		Name:   name,
		Status: CheckPass,
		Message: fmt.Sprintf("Data file is format v%d, Argon2id time=%d memory=%dKiB threads=%d",
			header.Version, header.Params.Time, header.Params.MemoryKiB, header.Params.Threads),
	}
}

// checkOtherDataFiles checks that every data file in the directory has a readable header.
func checkOtherDataFiles(opts DoctorOptions) CheckResult {
	users, err := opts.Vault.Users()
	if err != nil {
		return CheckResult{Name: "Other data files", Status: CheckError, Message: err.Error()}
	}

	var damaged []string
	for _, user := range users {
		if user == opts.Username {
			continue
		}
		if _, err := opts.Vault.Header(user); err != nil {
			damaged = append(damaged, user)
		}
	}

	if len(damaged) > 0 {
		return CheckResult{
			Name:       "Other data files",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Damaged data file(s) for: %s", strings.Join(damaged, ", ")),
			Suggestion: "Restore damaged data files from a backup",
		}
	}

	return CheckResult{
		Name:    "Other data files",
		Status:  CheckPass,
		Message: fmt.Sprintf("%d data file(s) found", len(users)),
	}
}

// checkLeftoverTempFiles looks for temp files from saves that were interrupted before the rename.
func checkLeftoverTempFiles(opts DoctorOptions) CheckResult {
	matches, err := doublestar.Glob(os.DirFS(opts.Vault.DataDir()), ".*"+vault.Extension+".tmp-*")
	if err != nil {
		return CheckResult{Name: "Temp files", Status: CheckError, Message: err.Error()}
	}

	if len(matches) > 0 {
		return CheckResult{
			Name:       "Temp files",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Found %d temp file(s) from interrupted saves: %s", len(matches), strings.Join(matches, ", ")),
			Suggestion: "Delete the temp files in " + opts.Vault.DataDir() + "; your data files are unaffected",
		}
	}

	return CheckResult{
		Name:    "Temp files",
		Status:  CheckPass,
		Message: "No temp files left behind",
	}
}

// checkAuditLog checks the audit log is private when it exists.
func checkAuditLog(opts DoctorOptions) CheckResult {
	path := audit.LogPath(opts.Vault.DataDir())
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return CheckResult{
			Name:    "Audit log",
			Status:  CheckPass,
			Message: "No audit log yet",
		}
	}
	if err != nil {
		return CheckResult{Name: "Audit log", Status: CheckError, Message: "Cannot read audit log: " + err.Error()}
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0077 != 0 {
		return CheckResult{
			Name:       "Audit log",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Audit log is readable by others (permissions %04o)", info.Mode().Perm()),
			Suggestion: "Run 'chmod 600 " + path + "'",
		}
	}

	return CheckResult{
		Name:    "Audit log",
		Status:  CheckPass,
		Message: "Audit log is private",
	}
}

// calculateDoctorSummary calculates the counts of checks by status.
func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, result := range results {
		switch result.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
