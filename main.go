package main

import (
	"github.com/caas-team/tpu-doc/cmd"
)

// These are set at build time by using
// -ldflags "-X main.version=x.x.x -X main.commit=... -X main.date=..."
var (
	version = "dev"
	commit  string
	date    string
)

func main() {
	cmd.Execute(cmd.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
}
