package main

import "github.com/galpin/pluck/cmd"

func main() {
	cmd.Execute()
}
