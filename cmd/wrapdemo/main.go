// Command wrapdemo runs the invocation wrapper scenarios and inspects the
// records they leave behind.
package main

import (
	"os"

	"github.com/jdziat/simple-invocation-wrappers/cmd/wrapdemo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
