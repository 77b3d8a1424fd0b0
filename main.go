package main

import "minder/cmd"

func main() {
	cmd.Execute()
}
