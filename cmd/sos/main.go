package main

import "github.com/mcoot/sosgame/internal/cli"

func main() {
	cli.Execute()
}
