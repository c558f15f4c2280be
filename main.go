package main

import "ordered-sync/cmd"

func main() {
	cmd.Execute()
}
