package main

import (
	"os"

	"github.com/minowang/jobcorpus/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
