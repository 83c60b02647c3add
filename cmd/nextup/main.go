// Command nextup is a single-user priority task scheduler with
// dependency ordering, backed by one local JSON file.
package main

import (
	"os"

	"nextup/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
