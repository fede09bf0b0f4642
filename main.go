package main

import "github.com/tanq16/cratedl/cmd"

func main() {
	cmd.Execute()
}
