package main

import "classdesk/cmd/classdesk/commands"

func main() {
	commands.Execute()
}
