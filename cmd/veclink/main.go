package main

import "github.com/hiroki-ota/veclink/internal/cli"

func main() {
	cli.Execute()
}
