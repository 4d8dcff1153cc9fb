package main

import (
	"github.com/daedaleanai/gypconf/cmd"
)

func main() {
	cmd.Execute()
}
