// Package errors provides typed error values for closet.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Crypto errors: the data file could not be authenticated (ErrAuthenticationOrCorruption)
//   - Payload errors: decryption worked but the document is invalid (ErrMalformedPayload)
//   - Validation errors: an edit was rejected before reaching the store (ErrValidation)
//   - Storage errors: file system failures while loading or saving (ErrStorage)
//   - Inventory errors: lookups that found nothing (ErrDrawerNotFound, ErrItemNotFound)
//
// # Usage
//
// Return errors from internal packages, wrapping the cause:
//
//	return fmt.Errorf("%w: reading %s: %w", kerrors.ErrStorage, path, err)
//
// Handle errors in the CLI layer:
//
//	store, err := manager.Load(username, password)
//	if errors.Is(err, kerrors.ErrAuthenticationOrCorruption) {
//	    // Wrong password or damaged file. Never guess which.
//	}
//
// Every error in this package is recoverable. None of them should terminate
// the process on its own.
package errors
