package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PolarWolf314/closet/internal/audit"
	kerrors "github.com/PolarWolf314/closet/internal/errors"
	"github.com/PolarWolf314/closet/internal/inventory"
	logger "github.com/PolarWolf314/closet/internal/logging"
	"github.com/PolarWolf314/closet/internal/vault"

	"github.com/google/uuid"
)

// SessionOptions configures OpenSession.
type SessionOptions struct {
	Username string
	Password string
	Vault    *vault.Manager
	Logger   logger.Logger
}

// Session is one user's unlocked closet. It is not safe for concurrent use.
type Session struct {
	// ID identifies the session in the audit log.
	ID       string
	Username string

	password string
	vault    *vault.Manager
	store    *inventory.Store
	log      logger.Logger

	dirty   bool
	pending []audit.Entry
	closed  bool
}

// OpenSession loads the user's closet. A user without a data file gets an
// empty closet, which is written on the first Commit.
//
// Returns ErrEmptyPassword if no password is given.
// Returns ErrInvalidUsername if the username cannot name a data file.
// Returns ErrAuthenticationOrCorruption if the file cannot be decrypted.
// Returns ErrMalformedPayload if the decrypted contents are invalid.
func OpenSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Vault == nil {
		return nil, fmt.Errorf("no vault configured")
	}
	if opts.Password == "" {
		return nil, kerrors.ErrEmptyPassword
	}

	s := &Session{
		ID:       uuid.NewString(),
		Username: opts.Username,
		password: opts.Password,
		vault:    opts.Vault,
		log:      opts.Logger,
	}

	store, err := opts.Vault.Load(opts.Username, opts.Password)
	if err != nil {
		if errors.Is(err, kerrors.ErrAuthenticationOrCorruption) {
			audit.Log(opts.Vault.DataDir(), audit.NewEntry(opts.Username, s.ID, audit.OpUnlockFailed))
		}
		return nil, err
	}
	s.store = store
	s.log.Debugf("Opened session %s for %s", s.ID, opts.Username)

	return s, nil
}

// Snapshot returns a copy of every drawer.
func (s *Session) Snapshot() inventory.Drawers {
	return s.store.ReadAll()
}

// Dirty reports whether the session has edits that Commit would save.
func (s *Session) Dirty() bool {
	return s.dirty
}

// DataDir returns the directory the session's file lives in.
func (s *Session) DataDir() string {
	return s.vault.DataDir()
}

// apply replaces the store with next and queues an audit entry for op.
// The store is unchanged if next does not validate.
func (s *Session) apply(op string, next inventory.Drawers, forced bool) error {
	if s.closed {
		return fmt.Errorf("session is closed")
	}
	if err := s.store.WriteAll(next); err != nil {
		return err
	}
	s.dirty = true

	entry := audit.NewEntry(s.Username, s.ID, op)
	entry.Timestamp = time.Now().UTC().Format(audit.TimestampFormat)
	entry.Forced = forced
	s.pending = append(s.pending, entry)
	return nil
}

// record writes an audit entry for a read-only operation right away.
func (s *Session) record(entry audit.Entry) {
	entry.User = s.Username
	entry.Session = s.ID
	audit.Log(s.vault.DataDir(), entry)
}

// Commit saves the closet if it changed since it was opened or last
// committed, then writes the queued audit entries.
func (s *Session) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.closed {
		return fmt.Errorf("session is closed")
	}
	if !s.dirty {
		s.log.Debugf("Nothing changed, not saving")
		return nil
	}

	if err := s.vault.Save(s.Username, s.password, s.store); err != nil {
		return err
	}
	s.dirty = false

	drawers := s.store.ReadAll()
	for _, entry := range s.pending {
		entry.Drawers = len(drawers)
		entry.Items = drawers.ItemCount()
		audit.Log(s.vault.DataDir(), entry)
	}
	s.pending = nil

	return nil
}

// Close drops the password and the store. Uncommitted edits are lost.
func (s *Session) Close() {
	s.password = ""
	s.store = inventory.New()
	s.pending = nil
	s.closed = true
}
