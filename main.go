package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ztacole/BacaDong/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := cli.Execute(context.Background(), Version+" ("+Commit+")"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
