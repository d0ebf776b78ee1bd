package main

import "github.com/shopping-mall/mall-api/commands"

func main() {
	commands.Execute()
}
