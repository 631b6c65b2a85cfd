// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface and registers its routes on the
// hook server when enabled.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Loading of enabled features via LoadAll()
//
// Features such as modsettings, vfs, backup and integrity are developed and tested in
// isolation and only meet here.
package loader
