package main

import "github.com/jfmyers9/cratedig/cmd"

func main() {
	cmd.Execute()
}
