package version

// Version is set via ldflags at build time:
// go build -ldflags "-X github.com/mkramer/instapp/internal/version.Version=v1.0.0"
var Version = "dev"
