package main

import "github.com/calliope-audio/voicemetrics/cmd"

func main() {
	cmd.Execute()
}
