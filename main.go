package main

import "nathanbeddoewebdev/slatf/cmd"

func main() {
	cmd.Execute()
}
