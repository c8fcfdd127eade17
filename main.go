package main

import "github.com/bccsims/asset-inventory/cmd"

func main() {
	cmd.Execute()
}
