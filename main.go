package main

import "botw/cmd"

func main() {
	cmd.Execute()
}
