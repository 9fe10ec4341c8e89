package main

import "pollredis/cmd"

func main() {
	cmd.Execute()
}
