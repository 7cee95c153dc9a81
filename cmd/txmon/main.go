package main

import "github.com/Raswanth-RM/Transaction-Monitoring/internal/cli"

func main() {
	cli.Execute()
}
