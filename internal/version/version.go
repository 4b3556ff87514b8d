// Package version carries build information. The variables are set at link
// time:
//
//	go build -ldflags "-X github.com/pfmabe/contour2llz/internal/version.Version=v1.2.0 \
//	  -X github.com/pfmabe/contour2llz/internal/version.GitSHA=$(git rev-parse --short HEAD)"
package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// Banner is the one-line identification printed at startup.
func Banner(program string) string {
	return fmt.Sprintf("%s %s (%s, built %s)", program, Version, GitSHA, BuildTime)
}
