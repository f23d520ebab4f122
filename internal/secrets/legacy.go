package secrets

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	kerrors "github.com/PolarWolf314/closet/internal/errors"
)

const (
	fernetVersion  byte = 0x80
	fernetOverhead      = 1 + 8 + aes.BlockSize + sha256.Size
)

// LegacyKey derives the key used by closet 1.x: an unsalted SHA-256
// of the password, split into a signing half and an encryption half.
func LegacyKey(password string) (signing, encryption []byte) {
	sum := sha256.Sum256([]byte(password))
	return bytes.Clone(sum[:16]), bytes.Clone(sum[16:])
}

// DecryptLegacy verifies and decrypts a Fernet token written by closet 1.x.
// A wrong password and a damaged token both yield
// ErrAuthenticationOrCorruption; a token that is not Fernet at all yields
// ErrLegacyFormat.
func DecryptLegacy(token []byte, password string) ([]byte, error) {
	raw, err := decodeFernet(bytes.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrLegacyFormat, err)
	}
	if len(raw) < fernetOverhead+aes.BlockSize || raw[0] != fernetVersion {
		return nil, fmt.Errorf("%w: not a Fernet token", kerrors.ErrLegacyFormat)
	}

	signing, encryption := LegacyKey(password)
	defer clear(signing)
	defer clear(encryption)

	body, tag := raw[:len(raw)-sha256.Size], raw[len(raw)-sha256.Size:]
	mac := hmac.New(sha256.New, signing)
	mac.Write(body)
	if !hmac.Equal(mac.Sum(nil), tag) {
		return nil, kerrors.ErrAuthenticationOrCorruption
	}

	iv := body[9 : 9+aes.BlockSize]
	ciphertext := body[9+aes.BlockSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, kerrors.ErrAuthenticationOrCorruption
	}

	block, err := aes.NewCipher(encryption)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, ok := unpadPKCS7(plaintext)
	if !ok {
		return nil, kerrors.ErrAuthenticationOrCorruption
	}
	return plaintext, nil
}

func decodeFernet(token []byte) ([]byte, error) {
	raw, err := base64.URLEncoding.DecodeString(string(token))
	if err == nil {
		return raw, nil
	}
	return base64.RawURLEncoding.DecodeString(string(bytes.TrimRight(token, "=")))
}

func unpadPKCS7(b []byte) ([]byte, bool) {
	if len(b) == 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, false
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
