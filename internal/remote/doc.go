// Package remote holds the local-side helpers used when handing a project to
// the remote builder: deterministic build identifiers, resilient removal of
// build trees, architecture validation and list formatting for messages.
//
// Every helper is a synchronous leaf call with no shared mutable state.
// Overlapping RemoveTree calls on the same tree are not synchronized; the
// outcome is whatever the filesystem makes of concurrent deletes.
package remote
