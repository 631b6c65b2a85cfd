// Package backup copies a profile's generated files to object storage and back.
//
// Only the load order and the metadata cache are backed up; both are regenerated by the
// tool, so a restore is a convenience for moving profiles between machines. Objects live
// under <prefix>/<profile>/ in the configured bucket.
//
// # Endpoints
//
//   - POST /backup/:profile/push
//   - POST /backup/:profile/pull
//   - GET  /backup/:profile
package backup
