package main

import "github.com/oceanix/incident-platform/cmd"

func main() {
	cmd.Execute()
}
