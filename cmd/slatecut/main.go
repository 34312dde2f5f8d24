package main

import "slatecut/internal/cli"

func main() {
	cli.Main()
}
