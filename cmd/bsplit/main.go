package main

import (
	"fmt"
	"os"

	"github.com/mccanne/charm"
)

func main() {
	Bsplit.Add(charm.Help)
	if _, err := Bsplit.ExecRoot(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
