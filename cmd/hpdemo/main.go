// Command hpdemo serves the horsepower example pages and demo endpoints.
package main

import (
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
