package secrets

import (
	"crypto/rand"
	"fmt"

	kerrors "github.com/PolarWolf314/closet/internal/errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// KeySize is the length of derived keys in bytes.
	KeySize = chacha20poly1305.KeySize

	// SaltSize is the length of the per-file random salt.
	SaltSize = 16

	maxTime      = 10
	maxMemoryKiB = 1 << 20
	maxThreads   = 64
)

// KDFParams are the Argon2id cost parameters. They are stored in every file
// header so files stay readable after the configured defaults change.
type KDFParams struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultKDFParams returns the parameters used when none are configured.
func DefaultKDFParams() KDFParams {
	return KDFParams{Time: 1, MemoryKiB: 64 * 1024, Threads: 4}
}

// Validate reports whether the parameters are within the accepted bounds.
// Files with parameters outside these bounds are treated as corrupt, which
// keeps a damaged header from requesting absurd amounts of memory.
func (p KDFParams) Validate() error {
	switch {
	case p.Time < 1 || p.Time > maxTime:
		return fmt.Errorf("%w: time must be between 1 and %d, got %d", kerrors.ErrInvalidKDFParams, maxTime, p.Time)
	case p.Threads < 1 || p.Threads > maxThreads:
		return fmt.Errorf("%w: threads must be between 1 and %d, got %d", kerrors.ErrInvalidKDFParams, maxThreads, p.Threads)
	case p.MemoryKiB < 8*uint32(p.Threads) || p.MemoryKiB > maxMemoryKiB:
		return fmt.Errorf("%w: memory must be between %d and %d KiB, got %d", kerrors.ErrInvalidKDFParams, 8*uint32(p.Threads), maxMemoryKiB, p.MemoryKiB)
	}
	return nil
}

// Key is derived key material plus the salt and parameters it came from.
// Encrypt writes the salt and parameters into the file header.
type Key struct {
	material [KeySize]byte
	salt     [SaltSize]byte
	params   KDFParams
}

// Salt returns a copy of the salt the key was derived with.
func (k *Key) Salt() []byte {
	s := make([]byte, SaltSize)
	copy(s, k.salt[:])
	return s
}

// Params returns the parameters the key was derived with.
func (k *Key) Params() KDFParams {
	return k.params
}

// Wipe zeroes the key material. The key must not be used afterwards.
func (k *Key) Wipe() {
	clear(k.material[:])
}

// NewSalt returns a fresh random salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey derives a key from a password with Argon2id. The same password,
// salt and parameters always produce the same key. Params must have passed
// Validate and salt must be SaltSize bytes; shorter salts are zero padded.
func DeriveKey(password string, salt []byte, params KDFParams) *Key {
	k := &Key{params: params}
	copy(k.salt[:], salt)

	derived := argon2.IDKey([]byte(password), k.salt[:], params.Time, params.MemoryKiB, params.Threads, KeySize)
	copy(k.material[:], derived)
	clear(derived)

	return k
}

// NewKey draws a fresh salt and derives a key for a new file generation.
func NewKey(password string, params KDFParams) (*Key, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	salt, err := NewSalt()
	if err != nil {
		return nil, err
	}
	return DeriveKey(password, salt, params), nil
}
