package handler

import (
	"cmp"
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
	"sync"
)

// VersionInfo describes the running binary
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Commit    string `json:"commit,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

// Set with -ldflags "-X .../handler.Version=... -X .../handler.Commit=...".
// When unset, the VCS stamp recorded by the go tool is used.
var (
	Version string
	Commit  string
)

var vcsStamp = sync.OnceValue(func() VersionInfo {
	var info VersionInfo
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
		case "vcs.time":
			info.BuiltAt = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
})

// HandleVersion reports the build version
// GET /version
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := vcsStamp()
		info.Version = cmp.Or(Version, os.Getenv("VERSION"), "dev")
		info.Commit = cmp.Or(Commit, info.Commit)
		info.GoVersion = runtime.Version()
		respondJSON(w, http.StatusOK, info)
	}
}
