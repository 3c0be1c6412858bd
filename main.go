package main

import "github.com/devicelab-dev/zylix-runner/pkg/cli"

func main() {
	cli.Execute()
}
