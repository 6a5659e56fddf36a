package main

import "github.com/grust-community/admin-panel/internal/cli"

func main() {
	cli.Execute()
}
