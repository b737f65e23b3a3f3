package main

import "smtresolve/internal/cli"

func main() {
	cli.Execute()
}
