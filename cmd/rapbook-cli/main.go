package main

import "rapbook/cmd/rapbook-cli/cmd"

func main() {
	cmd.Execute()
}
