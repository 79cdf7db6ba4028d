// Package mutation implements the operations that change a mapping tree:
// wrapping items with conditions, adding choose branches, creating field
// items, attaching value selectors and deleting items.
//
// Every operation works on the canonical mapping.Tree in place and returns
// synchronously. A request whose pre-condition does not hold (wrapping an
// item that is already wrapped the same way, a second otherwise branch, a
// detached item) is a no-op: it is logged at debug level and reported as
// (nil, false), never as an error.
package mutation
