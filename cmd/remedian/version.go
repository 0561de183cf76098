package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the remedian version",
	Run: func(*cobra.Command, []string) {
		fmt.Println("remedian " + version)
	},
}
