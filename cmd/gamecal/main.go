package main

import "gamecal/internal/cli"

func main() {
	cli.Execute()
}
