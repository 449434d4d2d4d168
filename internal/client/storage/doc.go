// Package storage layers typed, in-memory-mirrored records over a
// kv.Repository.
//
// Three pieces build on each other:
//
//   - Adapter: JSON encoding on top of the raw medium. Reads never fail;
//     a missing or undecodable value yields the caller's default and a
//     warning in the log. Writes report their errors.
//   - Cell and Family: one cell per backing key, hydrated from the adapter
//     on first use and kept in memory afterwards. Writes go to the backing
//     store first and update the mirror only on success.
//   - Index: the persisted, ordered list of Sim ids stored under "sim-ids".
//
// Cells are safe for concurrent use, but a Get followed by a Set is not
// atomic: concurrent read-modify-write cycles on one cell race and the
// last write wins.
package storage
