package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/closet/internal/errors"
	"github.com/PolarWolf314/closet/internal/inventory"
	logger "github.com/PolarWolf314/closet/internal/logging"
	"github.com/PolarWolf314/closet/internal/secrets"
	"github.com/PolarWolf314/closet/internal/utils"

	"github.com/bmatcuk/doublestar/v4"
)

// Extension is the file name suffix of data files.
const Extension = ".closet"

// openMemoryCeilingKiB caps the Argon2id memory an unauthenticated header may
// ask for when opening a file, unless the configured cost is higher.
const openMemoryCeilingKiB = 256 * 1024

// Manager reads and writes data files in one directory.
type Manager struct {
	dataDir string
	params  secrets.KDFParams
	log     logger.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithKDFParams sets the Argon2id cost used when saving.
func WithKDFParams(p secrets.KDFParams) Option {
	return func(m *Manager) { m.params = p }
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l logger.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager returns a Manager for dataDir.
func NewManager(dataDir string, opts ...Option) *Manager {
	m := &Manager{
		dataDir: dataDir,
		params:  secrets.DefaultKDFParams(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DataDir returns the directory the manager works in.
func (m *Manager) DataDir() string {
	return m.dataDir
}

// ValidateUsername reports whether username can name a data file.
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username is empty", kerrors.ErrInvalidUsername)
	case strings.ContainsAny(username, `/\`) || strings.ContainsRune(username, os.PathSeparator):
		return fmt.Errorf("%w: %q contains a path separator", kerrors.ErrInvalidUsername, username)
	case strings.ContainsRune(username, 0):
		return fmt.Errorf("%w: username contains a NUL byte", kerrors.ErrInvalidUsername)
	case strings.HasPrefix(username, "."):
		return fmt.Errorf("%w: %q starts with a dot", kerrors.ErrInvalidUsername, username)
	}
	return nil
}

// Path returns the data file path for username.
func (m *Manager) Path(username string) (string, error) {
	if err := ValidateUsername(username); err != nil {
		return "", err
	}
	return filepath.Join(m.dataDir, username+Extension), nil
}

// Exists reports whether username has a data file.
func (m *Manager) Exists(username string) (bool, error) {
	path, err := m.Path(username)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", kerrors.ErrStorage, err)
	}
}

// openMemoryLimitKiB is the most memory Load will spend deriving a key.
func (m *Manager) openMemoryLimitKiB() uint32 {
	return max(m.params.MemoryKiB, openMemoryCeilingKiB)
}

// Load reads and decrypts username's data file. A missing file yields an
// empty store.
func (m *Manager) Load(username, password string) (*inventory.Store, error) {
	path, err := m.Path(username)
	if err != nil {
		return nil, err
	}

	blob, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		m.log.Infof("No data file at %s, starting with an empty closet", path)
		return inventory.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrStorage, err)
	}
	m.log.Debugf("Read %d bytes from %s", len(blob), path)

	header, err := secrets.ParseHeader(blob)
	if err != nil {
		return nil, err
	}
	if limit := m.openMemoryLimitKiB(); header.Params.MemoryKiB > limit {
		return nil, fmt.Errorf("%w: %s asks for %d KiB of key derivation memory, above the %d KiB allowed when opening; raise kdf.memory_kib if it really was saved with that cost",
			kerrors.ErrInvalidKDFParams, path, header.Params.MemoryKiB, limit)
	}
	m.log.Debugf("Deriving key (time=%d memory=%dKiB threads=%d)", header.Params.Time, header.Params.MemoryKiB, header.Params.Threads)

	key := secrets.DeriveKey(password, header.Salt, header.Params)
	defer key.Wipe()

	payload, err := secrets.Decrypt(blob, key)
	if err != nil {
		return nil, err
	}
	defer clear(payload)

	store, err := inventory.Parse(payload)
	if err != nil {
		return nil, err
	}
	m.log.Infof("Loaded %d drawers from %s", store.Len(), path)
	return store, nil
}

// Save encrypts store under password and replaces username's data file.
// On failure the previous file, if any, is left as it was.
func (m *Manager) Save(username, password string, store *inventory.Store) error {
	if password == "" {
		return kerrors.ErrEmptyPassword
	}
	path, err := m.Path(username)
	if err != nil {
		return err
	}

	payload, err := inventory.Marshal(store)
	if err != nil {
		return err
	}
	defer clear(payload)

	key, err := secrets.NewKey(password, m.params)
	if err != nil {
		return err
	}
	defer key.Wipe()

	blob, err := secrets.Encrypt(payload, key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(m.dataDir, 0700); err != nil {
		return fmt.Errorf("%w: %w", kerrors.ErrStorage, err)
	}
	if err := utils.WriteFileAtomic(path, blob, 0600); err != nil {
		return fmt.Errorf("%w: %w", kerrors.ErrStorage, err)
	}
	m.log.Infof("Saved %d drawers to %s", store.Len(), path)
	return nil
}

// Header reads the plaintext header of username's data file. No password is
// needed; the contents stay encrypted.
func (m *Manager) Header(username string) (secrets.Header, error) {
	path, err := m.Path(username)
	if err != nil {
		return secrets.Header{}, err
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return secrets.Header{}, fmt.Errorf("%w: %w", kerrors.ErrStorage, err)
	}
	return secrets.ParseHeader(blob)
}

// Users lists the usernames that have a data file, sorted.
func (m *Manager) Users() ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(m.dataDir), "*"+Extension, doublestar.WithFilesOnly())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrStorage, err)
	}

	users := make([]string, 0, len(matches))
	for _, match := range matches {
		name := strings.TrimSuffix(match, Extension)
		if ValidateUsername(name) == nil {
			users = append(users, name)
		}
	}
	sort.Strings(users)
	return users, nil
}
