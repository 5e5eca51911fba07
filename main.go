package main

import "hr-eval/cmd"

func main() {
	cmd.Execute()
}
