// Package version holds the client's build identity so any layer can
// report it without importing the cli package.
package version

// Version is the release tag baked in via ldflags; source builds carry
// the -dev suffix.
var Version = "v0.3.0-dev"

// BuildTime is the build timestamp baked in via ldflags.
var BuildTime = "unknown"
