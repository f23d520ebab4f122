// Package secrets provides the cryptographic operations behind closet data
// files.
//
// # Key Derivation
//
// A password is turned into a 256-bit key with Argon2id. Every save draws a
// fresh 16-byte random salt, and the salt together with the Argon2
// parameters is written into the file header, so the same password yields a
// different key for every file generation. DeriveKey is deterministic for a
// given (password, salt, params) triple.
//
// # Encryption
//
// Payloads are sealed with XChaCha20-Poly1305 using a random 24-byte nonce.
// The complete header is passed as associated data, which means a change to
// any byte of the file (header, nonce or ciphertext) makes Decrypt fail
// instead of returning altered plaintext. Encrypting the same payload twice
// produces different output.
//
// # File Layout
//
//	magic "CLST" | version | kdf id | time | memory | threads | salt | nonce | ciphertext+tag
//
// The blob is self-contained: given the bytes and the password, nothing else
// is needed to decrypt it.
//
// # Legacy Files
//
// DecryptLegacy reads files written by closet 1.x, which used
// Fernet tokens keyed by an unsalted SHA-256 of the password. It exists only
// to import old data; new files are never written in that format.
package secrets
