package main

import (
	"os"

	"taskmcp/internal/cli"
)

// Set at build time via -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	os.Exit(cli.Execute())
}
