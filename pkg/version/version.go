package version

// Version is the release version, overridable at build time with
// -ldflags "-X github.com/solidcat/solidcat/pkg/version.Version=...".
var Version = "0.2.0"

const Name = "solidcat"
