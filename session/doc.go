// Package session holds the current tree of an editing session.
//
// A Session publishes a new snapshot for each accepted edit.  Snapshots are
// immutable trees which share untouched subtrees with their predecessors,
// so a subscriber may keep any snapshot it is handed.
//
// A Session is not safe for concurrent use.
package session
