package main

import (
	"os"

	"alfredoptarigan/resume-tailor/cmd/tailor/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
