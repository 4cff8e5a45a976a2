package main

import "xview/cmd"

func main() {
	cmd.Execute()
}
