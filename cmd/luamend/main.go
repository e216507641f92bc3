// Package main provides the luamend command.
package main

import "github.com/luamend/luamend/internal/cli"

func main() {
	cli.Execute()
}
