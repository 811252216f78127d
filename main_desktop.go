//go:build !android

package main

import "place/internal/cli"

func main() {
	cli.Run()
}
