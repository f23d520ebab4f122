package cmd

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PolarWolf314/closet/internal/secrets"
)

const legacyDoc = `{"drawers": {
	"1": {"drawer": "Top", "items": [{"name": "pen", "quantity": 3}, {"name": "clip", "quantity": 10}]},
	"2": {"drawer": "Bottom", "items": [{"name": "tape", "quantity": 1}]}
}}`

// writeLegacyFile writes doc encrypted the way the previous version did.
func writeLegacyFile(t *testing.T, password, doc string) string {
	t.Helper()
	signing, encryption := secrets.LegacyKey(password)

	plain := []byte(doc)
	pad := aes.BlockSize - len(plain)%aes.BlockSize
	plain = append(plain, bytes.Repeat([]byte{byte(pad)}, pad)...)

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		t.Fatalf("Failed to generate IV: %v", err)
	}
	block, err := aes.NewCipher(encryption)
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}
	ciphertext := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plain)

	body := []byte{0x80}
	body = binary.BigEndian.AppendUint64(body, uint64(time.Now().Unix()))
	body = append(body, iv...)
	body = append(body, ciphertext...)
	mac := hmac.New(sha256.New, signing)
	mac.Write(body)

	path := filepath.Join(t.TempDir(), "alice.json")
	if err := os.WriteFile(path, []byte(base64.URLEncoding.EncodeToString(mac.Sum(body))), 0600); err != nil {
		t.Fatalf("Failed to write legacy file: %v", err)
	}
	return path
}

// TestImportCommand contains integration tests for the `closet import` command.
func TestImportCommand(t *testing.T) {
	t.Run("Import", testImport)
	t.Run("DryRun", testImportDryRun)
	t.Run("ExistingRequiresForce", testImportExistingRequiresForce)
	t.Run("SeparatePassword", testImportSeparatePassword)
	t.Run("WrongPassword", testImportWrongPassword)
}

func testImport(t *testing.T) {
	setupTestEnvironment(t)
	path := writeLegacyFile(t, "pw1", legacyDoc)

	output := mustRun(t, "pw1\n", "import", path)
	if !strings.Contains(output, "Imported 2 drawers and 3 items") {
		t.Errorf("Expected import summary, got: %s", output)
	}

	output = mustRun(t, "pw1\n", "drawer", "show", "Top")
	if !strings.Contains(output, "'pen'") || !strings.Contains(output, "'clip'") {
		t.Errorf("Expected imported items, got: %s", output)
	}
}

func testImportDryRun(t *testing.T) {
	env := setupTestEnvironment(t)
	path := writeLegacyFile(t, "pw1", legacyDoc)

	output := mustRun(t, "pw1\n", "import", path, "--dry-run")
	if !strings.Contains(output, "Dry run: would import 2 drawers and 3 items") {
		t.Errorf("Expected dry run summary, got: %s", output)
	}
	if _, err := os.Stat(env.dataFile("alice")); !os.IsNotExist(err) {
		t.Error("Dry run should not write a data file")
	}
}

func testImportExistingRequiresForce(t *testing.T) {
	setupTestEnvironment(t)
	mustRun(t, "pw1\n", "drawer", "create", "Shelf", "book=4")
	path := writeLegacyFile(t, "pw1", legacyDoc)

	output, err := runCLI(t, "pw1\n", "import", path)
	if err != nil {
		t.Errorf("Refusing to overwrite should exit zero, got %v", err)
	}
	if !strings.Contains(output, "data file already exists") || !strings.Contains(output, "--force") {
		t.Errorf("Expected exists message with hint, got: %s", output)
	}

	output = mustRun(t, "pw1\n", "import", path, "--force")
	if !strings.Contains(output, "Replaced existing data file with 2 drawers and 3 items") {
		t.Errorf("Expected replace summary, got: %s", output)
	}

	output = mustRun(t, "pw1\n", "drawer", "list")
	if strings.Contains(output, "'Shelf'") {
		t.Errorf("Import should replace the old closet, got: %s", output)
	}
}

func testImportSeparatePassword(t *testing.T) {
	setupTestEnvironment(t)
	path := writeLegacyFile(t, "old-pw", legacyDoc)

	mustRun(t, "new-pw\nold-pw\n", "import", path, "--separate-password")

	output := mustRun(t, "new-pw\n", "drawer", "list")
	if !strings.Contains(output, "2 drawers:") {
		t.Errorf("Expected the new password to open the imported closet, got: %s", output)
	}
}

func testImportWrongPassword(t *testing.T) {
	env := setupTestEnvironment(t)
	path := writeLegacyFile(t, "pw1", legacyDoc)

	output, err := runCLI(t, "pw2\n", "import", path)
	if err == nil {
		t.Fatal("Expected a wrong legacy password to exit non-zero")
	}
	if !strings.Contains(output, "Wrong password") {
		t.Errorf("Expected wrong password message, got: %s", output)
	}
	if _, err := os.Stat(env.dataFile("alice")); !os.IsNotExist(err) {
		t.Error("A failed import should not write a data file")
	}
}
