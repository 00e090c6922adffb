package main

import "kbaudit/cmd"

func main() {
	cmd.Execute()
}
