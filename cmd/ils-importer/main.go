// ils-importer - client for the catalogue importer service.
package main

import (
	"os"

	"github.com/libsys/ils-importer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
