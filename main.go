package main

import "github.com/cmmoran/metagen/cmd"

func main() {
	cmd.Execute()
}
