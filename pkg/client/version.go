package client

import (
	"fmt"
	"runtime"
)

var (
	Version   = "latest"
	CommitSHA = "development build"
)

func GetVersionInfo() string {
	return fmt.Sprintf("zipfgen:\n Version: %s\n Go version: %s\n Git commit: %s\n OS/Arch: %s\n",
		Version, runtime.Version(), CommitSHA, fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
}
