package main

import "antika-pos/cli"

func main() {
	cli.Execute()
}
