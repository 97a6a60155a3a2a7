package main

import "github.com/xh3b4sd/clickrank/cmd/clickrank/cmd"

func main() {
	cmd.Execute()
}
