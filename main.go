package main

import (
	"net/http"

	"github.com/rlsinstaller/rls-installer/cmd"
	"github.com/rlsinstaller/rls-installer/internals/config"
	"github.com/rlsinstaller/rls-installer/internals/ownhttp"
)

// set by the release build
var (
	version string
	commit  string
	// remoteModsJSONURL is set with -ldflags "-X main.remoteModsJSONURL=..."
	remoteModsJSONURL string
)

func main() {

	// replace default http client
	http.DefaultClient = ownhttp.New(ownhttp.DefaultUserAgent, config.DownloadTimeout)

	if version != "" {
		cmd.Version = version
	}
	cmd.Commit = commit
	cmd.RemoteModsJSONURL = remoteModsJSONURL
	cmd.Execute()
}
