/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"os"

	"github.com/cristianoliveira/displaygen/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
