// Package cleanup performs the destructive half of the sweep.
//
// The Executor only ever receives a *manifest.Manifest read from disk and a
// Deleter; it cannot see object listings or comparison results, so the keys it
// deletes are exactly the keys the reviewed manifest lists.
//
// # States
//
//	AwaitingManifest -> AwaitingConfirmation -> Deleting -> Completed
//	        |                    |
//	        +------> Aborted <---+
//
// An empty manifest completes without asking for confirmation. Any answer other
// than the literal Token aborts the run with ErrConfirmationDeclined before a
// single delete is issued. Each delete is accounted independently; one or more
// failures complete the run with ErrPartialDeletion.
package cleanup
