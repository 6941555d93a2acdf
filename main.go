package main

import (
	"os"

	"tc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
