package main

import "github.com/rskel/rskel/cmd"

func main() {
	cmd.Execute()
}
