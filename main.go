package main

import "github.com/beka-birhanu/vinom-mouse/cmd"

func main() {
	cmd.Execute()
}
