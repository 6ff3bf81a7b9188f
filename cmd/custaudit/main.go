package main

import "github.com/tmcf/custaudit/cmd/custaudit/cmd"

func main() {
	cmd.Execute()
}
