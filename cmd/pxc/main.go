package main

import "pxc/cmd/cli"

func main() {
	cli.RunCLI()
}
