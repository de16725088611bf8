package main

import "github.com/dugoutlab/dugout/cmd"

func main() {
	cmd.Execute()
}
