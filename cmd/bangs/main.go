package main

import "github.com/aalvaropc/bangs/internal/cli"

func main() {
	cli.Execute()
}
