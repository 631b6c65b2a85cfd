// Package history records every synthesis pass in a gorm database.
//
// The store is optional: when the database is disabled or unreachable the service runs
// without it. Each row keeps the profile, counts, and the SHA-256 digest of the document
// that was written, so an unchanged load order can be spotted across runs.
package history
