package version

// Version is set via -ldflags on release builds.
var Version = "0.1.0"

// Revision is the short commit hash of the build.
var Revision = "dev"
