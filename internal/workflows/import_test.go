package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/PolarWolf314/closet/internal/audit"
	kerrors "github.com/PolarWolf314/closet/internal/errors"
	"github.com/PolarWolf314/closet/internal/inventory"
)

const legacyDoc = `{"drawers": {"1": {"drawer": "Top", "items": [{"name": "pen", "quantity": 3}]}, "2": {"drawer": "Bottom", "items": [{"name": "tape", "quantity": 1}, {"name": "glue", "quantity": 2}]}}}`

func writeLegacyFile(t *testing.T, password string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alice.json")
	if err := os.WriteFile(path, legacyToken(t, password, []byte(legacyDoc)), 0600); err != nil {
		t.Fatalf("Failed to write legacy file: %v", err)
	}
	return path
}

func TestImportLegacy(t *testing.T) {
	v := newTestVault(t)
	path := writeLegacyFile(t, "pw1")

	result, err := ImportLegacy(context.Background(), ImportOptions{
		Path:     path,
		Username: "alice",
		Password: "pw1",
		Vault:    v,
	})
	if err != nil {
		t.Fatalf("ImportLegacy failed: %v", err)
	}
	if result.Drawers != 2 || result.Items != 3 || result.Replaced {
		t.Errorf("Unexpected result %+v", result)
	}

	s := openTestSession(t, v, nil)
	want := inventory.Drawers{
		"Top":    {{Name: "pen", Quantity: 3}},
		"Bottom": {{Name: "tape", Quantity: 1}, {Name: "glue", Quantity: 2}},
	}
	if !reflect.DeepEqual(s.Snapshot(), want) {
		t.Errorf("Imported closet = %v, want %v", s.Snapshot(), want)
	}

	entries := readAudit(t, v.DataDir())
	if len(entries) != 1 || entries[0].Operation != audit.OpImport || entries[0].Items != 3 {
		t.Errorf("Expected one import entry, got %+v", entries)
	}
}

func TestImportLegacy_SeparatePasswords(t *testing.T) {
	v := newTestVault(t)
	path := writeLegacyFile(t, "old")

	_, err := ImportLegacy(context.Background(), ImportOptions{
		Path:           path,
		Username:       "alice",
		Password:       "pw1",
		LegacyPassword: "old",
		Vault:          v,
	})
	if err != nil {
		t.Fatalf("ImportLegacy failed: %v", err)
	}

	s := openTestSession(t, v, nil)
	if len(s.Snapshot()) != 2 {
		t.Errorf("Expected 2 drawers, got %v", s.Snapshot())
	}
}

func TestImportLegacy_ExistingFile(t *testing.T) {
	v := newTestVault(t)
	openTestSession(t, v, inventory.Drawers{"Old": {{Name: "thing", Quantity: 1}}})
	path := writeLegacyFile(t, "pw1")

	opts := ImportOptions{Path: path, Username: "alice", Password: "pw1", Vault: v}
	if _, err := ImportLegacy(context.Background(), opts); !errors.Is(err, kerrors.ErrDataFileExists) {
		t.Fatalf("Expected ErrDataFileExists, got %v", err)
	}

	opts.Force = true
	result, err := ImportLegacy(context.Background(), opts)
	if err != nil {
		t.Fatalf("ImportLegacy with force failed: %v", err)
	}
	if !result.Replaced {
		t.Error("Expected Replaced to be true")
	}

	s := openTestSession(t, v, nil)
	if _, ok := s.Snapshot()["Old"]; ok {
		t.Error("Forced import should replace the existing closet")
	}
}

func TestImportLegacy_DryRun(t *testing.T) {
	v := newTestVault(t)
	path := writeLegacyFile(t, "pw1")

	result, err := ImportLegacy(context.Background(), ImportOptions{
		Path: path, Username: "alice", Password: "pw1", DryRun: true, Vault: v,
	})
	if err != nil {
		t.Fatalf("ImportLegacy failed: %v", err)
	}
	if !result.DryRun || result.Drawers != 2 {
		t.Errorf("Unexpected result %+v", result)
	}
	if exists, _ := v.Exists("alice"); exists {
		t.Error("Dry run should not write a data file")
	}
}

func TestImportLegacy_Failures(t *testing.T) {
	v := newTestVault(t)

	notFernet := filepath.Join(t.TempDir(), "plain.json")
	if err := os.WriteFile(notFernet, []byte(legacyDoc), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		name string
		opts ImportOptions
		want error
	}{
		{"WrongPassword", ImportOptions{Path: writeLegacyFile(t, "pw1"), Username: "alice", Password: "nope", Vault: v}, kerrors.ErrAuthenticationOrCorruption},
		{"NotFernet", ImportOptions{Path: notFernet, Username: "alice", Password: "pw1", Vault: v}, kerrors.ErrLegacyFormat},
		{"MissingFile", ImportOptions{Path: filepath.Join(t.TempDir(), "missing.json"), Username: "alice", Password: "pw1", Vault: v}, kerrors.ErrStorage},
		{"BadUsername", ImportOptions{Path: notFernet, Username: "../x", Password: "pw1", Vault: v}, kerrors.ErrInvalidUsername},
		{"EmptyPassword", ImportOptions{Path: notFernet, Username: "alice", Vault: v}, kerrors.ErrEmptyPassword},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ImportLegacy(context.Background(), tc.opts); !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
			if exists, _ := v.Exists("alice"); exists {
				t.Error("Failed import should not write a data file")
			}
		})
	}
}
