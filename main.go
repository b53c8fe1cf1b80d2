// Package main is the entry point for the gext CLI.
package main

import "gext.dev/pkg/gext/cmd"

func main() {
	cmd.Execute()
}
