package errors

import "errors"

// Crypto errors indicate the encrypted data file could not be opened.
var (
	// ErrAuthenticationOrCorruption indicates decryption failed. The password
	// may be wrong or the file may be damaged; the two are indistinguishable.
	ErrAuthenticationOrCorruption = errors.New("wrong password or the data file is damaged")

	// ErrEmptyPassword indicates no password was supplied.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrInvalidKDFParams indicates key derivation parameters are out of range.
	ErrInvalidKDFParams = errors.New("invalid key derivation parameters")

	// ErrLegacyFormat indicates a legacy data file could not be read.
	ErrLegacyFormat = errors.New("not a readable legacy data file")
)

// Payload errors indicate the decrypted document does not match the schema.
var (
	// ErrMalformedPayload indicates the password was correct but the stored
	// document is not a valid inventory.
	ErrMalformedPayload = errors.New("data file contents are malformed")
)

// Validation errors indicate an edit was rejected before it reached the store.
var (
	// ErrValidation is the parent of every validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidQuantity indicates a quantity that is not a positive integer.
	ErrInvalidQuantity = errors.New("quantity must be a positive whole number")

	// ErrInvalidName indicates an empty or non-UTF-8 drawer or item name.
	ErrInvalidName = errors.New("name must not be empty")

	// ErrInvalidUsername indicates a username that cannot name a data file.
	ErrInvalidUsername = errors.New("invalid username")
)

// Storage errors indicate file system failures.
var (
	// ErrStorage indicates a read, write or rename of a data file failed.
	ErrStorage = errors.New("data file I/O failed")

	// ErrDataFileExists indicates the destination data file already exists.
	ErrDataFileExists = errors.New("data file already exists")
)

// Inventory errors indicate a lookup against the store found nothing.
var (
	// ErrDrawerNotFound indicates the named drawer does not exist.
	ErrDrawerNotFound = errors.New("drawer not found")

	// ErrDrawerExists indicates a drawer with that name already exists.
	ErrDrawerExists = errors.New("drawer already exists")

	// ErrItemNotFound indicates the named item is not in the drawer.
	ErrItemNotFound = errors.New("item not found")
)

// Audit errors indicate issues reading the audit log.
var (
	// ErrNoAuditLog indicates no audit log has been written yet.
	ErrNoAuditLog = errors.New("no audit log found")

	// ErrInvalidDateFormat indicates the date format is invalid.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
