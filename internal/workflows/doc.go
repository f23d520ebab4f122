// Package workflows provides high-level orchestration for closet commands.
//
// Workflows coordinate the vault, inventory and audit packages to implement
// complete user-facing features. Each workflow handles one command's
// business logic, independent of CLI concerns like flag parsing, spinners
// and output formatting.
//
// # Sessions
//
// Inventory workflows operate on an explicit Session rather than global
// state. OpenSession derives the key and loads the user's closet once;
// workflows then read a snapshot, compute the next state and commit it to the
// in-memory store; Commit encrypts and saves once at the end:
//
//	s, err := workflows.OpenSession(ctx, workflows.SessionOptions{
//	    Username: "alice",
//	    Password: password,
//	    Vault:    vault.NewManager(dataDir),
//	})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if _, err := workflows.AddItem(ctx, s, workflows.AddItemOptions{
//	    Drawer: "Top", Name: "pen", Quantity: "3",
//	}); err != nil {
//	    return err
//	}
//	return s.Commit(ctx)
//
// A session that is closed without Commit discards its edits.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. Use
// errors.Is() to check for specific conditions:
//
//	if errors.Is(err, kerrors.ErrAuthenticationOrCorruption) {
//	    // wrong password or damaged file
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter
// and return early if it is already cancelled.
package workflows
