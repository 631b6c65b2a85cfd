// Package integrity provides environment health checks.
//
// # Checks Provided
//
//   - Tool: the Divine executable exists at the configured path.
//   - Scratch: extraction directories can be created under the scratch directory.
//   - Bucket: the backup bucket exists (skipped when storage is disabled).
//   - Profile: the profile directory exists and is writable.
//   - Cache: the profile's modsCache.json parses.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks (supports ?profile=NAME).
//   - GET /integrity/tool : Runs the tool check.
//   - GET /integrity/bucket : Runs the bucket check (supports ?fix=true).
//   - GET /integrity/profile/:profile : Runs the profile and cache checks.
package integrity
