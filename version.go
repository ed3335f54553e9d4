package gosocial

// Release metadata shown by `gosocial version` and sent in the User-Agent
// header. Release builds stamp the commit and date:
//
//	go build -ldflags "-X github.com/ZaguanLabs/gosocial.GitCommit=$(git rev-parse HEAD)"
const (
	Name        = "gosocial"
	Description = "Social content studio - captions, post ideas and hashtags from a theme"
	Version     = "0.1.0"
	Repository  = "https://github.com/ZaguanLabs/gosocial"
	License     = "MIT"
)

// Set by the linker; "unknown" in development builds.
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// FullVersion is Version with the short commit appended as build metadata,
// e.g. "0.1.0+abc1234".
func FullVersion() string {
	if GitCommit == "unknown" || GitCommit == "" {
		return Version
	}
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return Version + "+" + commit
}

// UserAgent identifies outgoing generation requests.
func UserAgent() string {
	return Name + "/" + Version
}
