package main

import "github.com/catshell/catshell/cmd"

func main() {
	cmd.Execute()
}
