package main

import "hh-server/cmd"

func main() {
	cmd.Execute()
}
