// Package reconcile compares the stored object set against the references found in content.
//
// The comparison is a mark-and-sweep set difference over object ids:
//
//   - Mark: every id that appears in a scanner.Reference is referenced.
//   - Sweep: every stored object whose id was not marked is orphaned.
//
// Compare is a pure function. Its output depends only on its inputs and keeps the
// listing order of the objects, so identical inputs always produce identical
// manifests.
//
// # Object identity
//
// An object id is the filename part of its key (see ObjectID). Two keys in
// different prefixes that share a filename are the same id: a reference to one
// marks both.
package reconcile
