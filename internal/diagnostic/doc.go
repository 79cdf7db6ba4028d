// Package diagnostic provides structured warnings and errors reported while
// importing schemas and mapping snapshots.
//
// Key capabilities:
//   - Unresolved field references in mapping snapshots
//   - Structural problems (misplaced branches, duplicate otherwise)
//   - Unresolved type fragments in imported schemas
package diagnostic
