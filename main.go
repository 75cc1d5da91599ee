package main

import "github.com/romantomjak/wolctl/cmd"

func main() {
	cmd.Execute()
}
