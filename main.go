package main

import "github.com/threef-labs/threef-cli/cmd"

func main() {
	cmd.Execute()
}
