package main

import "github.com/mcoot/lifecounter/internal/cli"

func main() {
	cli.Execute()
}
