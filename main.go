package main

import "content-sweeper/cmd"

func main() {
	cmd.Execute()
}
