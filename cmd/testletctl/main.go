// Command testletctl builds testlets from an item bank and prints
// randomized delivery orders.
package main

import (
	"os"
	"strings"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))
	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}
	os.Exit(Run(os.Stdout, os.Stderr, os.Args, env))
}
