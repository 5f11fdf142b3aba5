package main

import "github.com/mcoot/gamehub-go/internal/cli"

func main() {
	cli.Execute()
}
