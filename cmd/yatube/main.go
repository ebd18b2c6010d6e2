package main

import "yatube/cmd/yatube/commands"

func main() {
	commands.Execute()
}
