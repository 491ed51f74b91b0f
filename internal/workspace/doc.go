// Package workspace manages the local directories a remote build works in.
//
// Workspaces are named after the project's build identifier, so repeated
// invocations for the same project land in the same place.
//
// Persistent mode uses baseDir/<build-id> and keeps it across runs, letting
// later invocations pick up earlier state. It is only removed by Purge.
//
// Ephemeral mode creates baseDir/<build-id>-<timestamp>-<suffix> and removes
// it completely on Cleanup.
//
// All removals go through remote.Eraser, so read-only files left behind by
// build tools never block cleanup.
package workspace
