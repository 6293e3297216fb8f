// ABOUTME: Entry point for the NutriChef client
// ABOUTME: Terminal app and CLI for food photo nutrition analysis

package main

import (
	"fmt"
	"os"

	"github.com/AzlNach/NutriChef/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
