// Package misc holds build time program identification.
package misc

// Set with -ldflags "-X gvs/misc.version=... -X gvs/misc.gitHash=..." by the build.
var (
	appName = "gvs"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
