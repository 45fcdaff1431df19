package main

import "github.com/nextlevelbuilder/dolphbot/cmd"

func main() {
	cmd.Execute()
}
