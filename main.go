package main

import "github.com/hollow-labs/husk/cmd"

func main() {
	cmd.Execute()
}
