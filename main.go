package main

import "github.com/scribe-data/scribe/internal/cmd"

func main() {
	cmd.Execute()
}
