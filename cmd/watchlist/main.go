// Package main provides the watchlist CLI: the HTTP server plus the
// schema and sample-data maintenance commands.
package main

import (
	"fmt"
	"os"

	// Import all modules to trigger their registration
	_ "github.com/jermspeaks/watchlist/internal/modules/bookmodule"
	_ "github.com/jermspeaks/watchlist/internal/modules/catalogmodule"
	_ "github.com/jermspeaks/watchlist/internal/modules/placemodule"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
