package main

import "github.com/sergev/mfmdisk/cmd"

func main() {
	cmd.Execute()
}
