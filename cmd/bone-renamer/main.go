// Package main provides the CLI entrypoint for bone-renamer.
//
// bone-renamer maps bone names between rigging naming conventions using
// preset tables:
//   - rename converts a skeleton from one preset to another (or back)
//   - detect reports which preset a skeleton follows
//   - presets lists the presets the tables define
//   - check validates the tables, optionally re-checking on change
package main

import (
	"os"
)

func main() {
	a := newApp()
	err := newRootCmd(a).Execute()
	a.close()

	if err != nil {
		os.Exit(1)
	}
}
