// Package reconcile converges a profile's metadata cache with the host's live mod roster.
//
// Reconciliation is split in two steps, the same way the rest of the service treats
// destructive work:
//
//  1. Plan inspects a cache snapshot and lists the references to drop and the archives
//     that end up unreferenced. Planning never writes.
//  2. Apply executes a plan against a cache repository, but only when the caller
//     confirmed and did not ask for a dry run.
//
// Prune does both inside one repository update and is what the synthesizer runs before
// every pass, so stale references never reach the load order even if a removal
// notification was missed.
//
// After Prune, no archive references a name outside the live set and no archive is left
// without references.
package reconcile
