package workflows

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"testing"
	"time"

	"github.com/PolarWolf314/closet/internal/audit"
	"github.com/PolarWolf314/closet/internal/inventory"
	"github.com/PolarWolf314/closet/internal/secrets"
	"github.com/PolarWolf314/closet/internal/vault"
)

var testParams = secrets.KDFParams{Time: 1, MemoryKiB: 64, Threads: 1}

func newTestVault(t *testing.T) *vault.Manager {
	t.Helper()
	return vault.NewManager(t.TempDir(), vault.WithKDFParams(testParams))
}

// openTestSession opens a session for alice, seeding the closet first when
// drawers is not nil.
func openTestSession(t *testing.T, v *vault.Manager, drawers inventory.Drawers) *Session {
	t.Helper()
	if drawers != nil {
		store := inventory.New()
		if err := store.WriteAll(drawers); err != nil {
			t.Fatalf("Failed to seed store: %v", err)
		}
		if err := v.Save("alice", "pw1", store); err != nil {
			t.Fatalf("Failed to seed vault: %v", err)
		}
	}

	s, err := OpenSession(context.Background(), SessionOptions{
		Username: "alice",
		Password: "pw1",
		Vault:    v,
	})
	if err != nil {
		t.Fatalf("OpenSession failed: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func readAudit(t *testing.T, dataDir string) []audit.Entry {
	t.Helper()
	entries, err := audit.ReadEntries(dataDir)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	return entries
}

// legacyToken encrypts a document the way the previous version of the tool did.
func legacyToken(t *testing.T, password string, doc []byte) []byte {
	t.Helper()
	signing, encryption := secrets.LegacyKey(password)

	pad := aes.BlockSize - len(doc)%aes.BlockSize
	padded := append(bytes.Clone(doc), bytes.Repeat([]byte{byte(pad)}, pad)...)

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		t.Fatalf("Failed to generate IV: %v", err)
	}
	block, err := aes.NewCipher(encryption)
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	body := []byte{0x80}
	body = binary.BigEndian.AppendUint64(body, uint64(time.Now().Unix()))
	body = append(body, iv...)
	body = append(body, ciphertext...)

	mac := hmac.New(sha256.New, signing)
	mac.Write(body)
	return []byte(base64.URLEncoding.EncodeToString(mac.Sum(body)))
}
