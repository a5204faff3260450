package main

import "autoskip/cmd"

func main() {
	cmd.Execute()
}
