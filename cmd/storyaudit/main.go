package main

import "storyaudit/cmd/storyaudit/cmd"

func main() {
	cmd.Execute()
}
