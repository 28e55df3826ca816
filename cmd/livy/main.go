// Command livy compiles a single livy source file to bytecode.
package main

import (
	"os"

	"github.com/livy-lang/livy/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
