package main

import "knowyourplant/internal/cli"

func main() {
	cli.Execute()
}
