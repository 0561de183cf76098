package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available checks",
	Run: func(*cobra.Command, []string) {
		for _, c := range checkRegistry() {
			fmt.Printf("%-16s %s\n", c.Name, c.Description)
		}
	},
}
