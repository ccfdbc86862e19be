package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonesrussell/north-cloud/link-checker/cmd"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
