// Command treasuryctl values treasury investments offline from a YAML snapshot.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
