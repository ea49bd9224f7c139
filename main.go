package main

import "github.com/jsphweid/reprise/cmd"

func main() {
	cmd.Execute()
}
