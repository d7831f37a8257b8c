package main

import "github.com/voltember/stormbolt/cmd"

func main() {
	cmd.Execute()
}
