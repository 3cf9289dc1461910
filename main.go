package main

import "github.com/fraudshield/fraudshield-cli/cmd"

// execCmd is indirected for testing.
var execCmd = cmd.Execute

func main() {
	execCmd()
}
