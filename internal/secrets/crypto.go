package secrets

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/closet/internal/errors"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// FormatVersion is the blob format written by Encrypt.
	FormatVersion byte = 1

	kdfArgon2id byte = 1

	// HeaderSize is the number of header bytes before the nonce.
	HeaderSize = 4 + 1 + 1 + 4 + 4 + 1 + SaltSize

	nonceSize = chacha20poly1305.NonceSizeX
	minBlob   = HeaderSize + nonceSize + chacha20poly1305.Overhead
)

var magic = []byte("CLST")

// Header is the plaintext, authenticated prefix of every blob.
type Header struct {
	Version byte
	Params  KDFParams
	Salt    []byte
}

func (h Header) marshal() []byte {
	b := make([]byte, 0, HeaderSize)
	b = append(b, magic...)
	b = append(b, h.Version, kdfArgon2id)
	b = binary.BigEndian.AppendUint32(b, h.Params.Time)
	b = binary.BigEndian.AppendUint32(b, h.Params.MemoryKiB)
	b = append(b, h.Params.Threads)
	b = append(b, h.Salt...)
	return b
}

// ParseHeader reads the header of a blob so the caller can derive the key.
// Any structural problem, including out-of-range KDF parameters, is reported
// as ErrAuthenticationOrCorruption.
func ParseHeader(blob []byte) (Header, error) {
	if len(blob) < minBlob {
		return Header{}, fmt.Errorf("%w: file is truncated (%d bytes)", kerrors.ErrAuthenticationOrCorruption, len(blob))
	}
	if !bytes.Equal(blob[:4], magic) {
		return Header{}, fmt.Errorf("%w: not a closet data file", kerrors.ErrAuthenticationOrCorruption)
	}
	if blob[4] != FormatVersion {
		return Header{}, fmt.Errorf("%w: unsupported format version %d", kerrors.ErrAuthenticationOrCorruption, blob[4])
	}
	if blob[5] != kdfArgon2id {
		return Header{}, fmt.Errorf("%w: unsupported key derivation %d", kerrors.ErrAuthenticationOrCorruption, blob[5])
	}

	h := Header{
		Version: blob[4],
		Params: KDFParams{
			Time:      binary.BigEndian.Uint32(blob[6:10]),
			MemoryKiB: binary.BigEndian.Uint32(blob[10:14]),
			Threads:   blob[14],
		},
		Salt: bytes.Clone(blob[15:HeaderSize]),
	}
	if err := h.Params.Validate(); err != nil {
		return Header{}, fmt.Errorf("%w: %v", kerrors.ErrAuthenticationOrCorruption, err)
	}
	return h, nil
}

// Encrypt seals plaintext under key. Each call uses a fresh random nonce, so
// the output differs even for identical inputs.
func Encrypt(plaintext []byte, key *Key) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key.material[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	header := Header{Version: FormatVersion, Params: key.params, Salt: key.salt[:]}.marshal()

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	blob := make([]byte, 0, len(header)+nonceSize+len(plaintext)+aead.Overhead())
	blob = append(blob, header...)
	blob = append(blob, nonce[:]...)
	return aead.Seal(blob, nonce[:], plaintext, header), nil
}

// Decrypt opens a blob produced by Encrypt. It fails with
// ErrAuthenticationOrCorruption if the key is wrong or any byte of the blob
// was changed, and never returns partially verified plaintext.
func Decrypt(blob []byte, key *Key) ([]byte, error) {
	if _, err := ParseHeader(blob); err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(key.material[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	header := blob[:HeaderSize]
	nonce := blob[HeaderSize : HeaderSize+nonceSize]
	plaintext, err := aead.Open(nil, nonce, blob[HeaderSize+nonceSize:], header)
	if err != nil {
		return nil, kerrors.ErrAuthenticationOrCorruption
	}
	return plaintext, nil
}
