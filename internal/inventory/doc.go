// Package inventory holds the in-memory document store: drawers of named,
// quantified items.
//
// The store is only ever changed as a whole. Callers take a snapshot with
// ReadAll, compute the next state, and commit it with WriteAll, which
// validates every drawer and item before replacing anything:
//
//	drawers := store.ReadAll()
//	item, err := inventory.NewItem("pen", "3")
//	if err != nil {
//	    return err
//	}
//	drawers["Top"] = append(drawers["Top"], item)
//	if err := store.WriteAll(drawers); err != nil {
//	    return err
//	}
//
// Marshal and Parse convert a store to and from the plaintext payload that
// the vault package encrypts. ParseLegacy reads the document layout written
// by the previous version of the tool.
package inventory
