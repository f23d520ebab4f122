package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/closet/internal/audit"
	kerrors "github.com/PolarWolf314/closet/internal/errors"
	"github.com/PolarWolf314/closet/internal/inventory"
	logger "github.com/PolarWolf314/closet/internal/logging"
	"github.com/PolarWolf314/closet/internal/secrets"
	"github.com/PolarWolf314/closet/internal/vault"

	"github.com/google/uuid"
)

// ImportOptions configures the legacy import workflow.
type ImportOptions struct {
	// Path is the legacy data file, usually data/<username>.json.
	Path string

	Username string

	// Password protects the new data file.
	Password string

	// LegacyPassword opens the legacy file. Defaults to Password.
	LegacyPassword string

	// Force replaces an existing data file.
	Force bool

	// DryRun reads and checks the legacy file without writing anything.
	DryRun bool

	Vault  *vault.Manager
	Logger logger.Logger
}

// ImportResult contains the outcome of an import.
type ImportResult struct {
	Drawers int
	Items   int

	// Replaced is true when an existing data file was overwritten.
	Replaced bool
	DryRun   bool

	// Target is the data file written, or that would be written.
	Target string
}

// ImportLegacy converts a data file written by the previous version of the
// tool into the current format.
//
// Returns ErrDataFileExists if the user already has a data file and Force is
// not set.
// Returns ErrLegacyFormat if the file is not a legacy data file.
// Returns ErrAuthenticationOrCorruption if the legacy password is wrong.
func ImportLegacy(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Vault == nil {
		return nil, fmt.Errorf("no vault configured")
	}
	if opts.Password == "" {
		return nil, kerrors.ErrEmptyPassword
	}
	legacyPassword := opts.LegacyPassword
	if legacyPassword == "" {
		legacyPassword = opts.Password
	}

	target, err := opts.Vault.Path(opts.Username)
	if err != nil {
		return nil, err
	}
	exists, err := opts.Vault.Exists(opts.Username)
	if err != nil {
		return nil, err
	}
	if exists && !opts.Force {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrDataFileExists, target)
	}

	token, err := os.ReadFile(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrStorage, err)
	}

	opts.Logger.Debugf("Decrypting legacy file %s", opts.Path)
	doc, err := secrets.DecryptLegacy(token, legacyPassword)
	if err != nil {
		return nil, err
	}
	defer clear(doc)

	store, err := inventory.ParseLegacy(doc)
	if err != nil {
		return nil, err
	}

	drawers := store.ReadAll()
	result := &ImportResult{
		Drawers:  len(drawers),
		Items:    drawers.ItemCount(),
		Replaced: exists,
		DryRun:   opts.DryRun,
		Target:   target,
	}
	if opts.DryRun {
		return result, nil
	}

	if err := opts.Vault.Save(opts.Username, opts.Password, store); err != nil {
		return nil, err
	}
	opts.Logger.Infof("Imported %d drawers into %s", result.Drawers, target)

	entry := audit.NewEntry(opts.Username, uuid.NewString(), audit.OpImport)
	entry.Drawers = result.Drawers
	entry.Items = result.Items
	entry.Forced = exists
	audit.Log(opts.Vault.DataDir(), entry)

	return result, nil
}
