// Command impactctl runs impact, deflection and threat evaluations from the
// command line without the service.
//
// Usage:
//
//	impactctl impact --diameter 500 --velocity 20
//	impactctl compare --diameter 450 --velocity 18.5 --warning 10 --impact-date 2035-08-22
//	impactctl briefing --json
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
