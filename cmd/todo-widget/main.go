package main

import (
	"os"

	"github.com/idilsaglam/todo/internal/cli"
)

func main() {
	code := cli.Execute(cli.NewWidgetCommand(&cli.RootOptions{}), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(code)
}
