// Package vault loads and saves a user's inventory as one encrypted file.
//
// A Manager owns a data directory. Each username maps to
// <data dir>/<username>.closet, which holds exactly one blob produced by
// secrets.Encrypt. The password is only used to derive a key for the duration
// of a single Load or Save and is never stored.
//
// Load of a missing file returns an empty store. A wrong password and a
// damaged file both fail with errors.ErrAuthenticationOrCorruption, and Load
// never writes. Save writes a temp file and renames it into place, so the
// previous file survives any failure.
package vault
