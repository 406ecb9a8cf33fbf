package main

import (
	"os"
	"resolvo/cmd"
)

func main() {
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "conflicts")
	}
	cmd.Execute()
}
