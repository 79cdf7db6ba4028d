// Package main is the entry point for the datamapper CLI.
//
// datamapper builds documents from Go struct types and prints the view tree
// a mapping editor would show for them:
//   - tree prints the bounded parse of one document, with its mappings
//   - suggest ranks source fields for every target leaf
package main

import (
	"fmt"
	"os"

	"datamapper/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
