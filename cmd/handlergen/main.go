package main

import (
	"os"

	"github.com/nhattientran/handlergen/internal/commands"
	"github.com/nhattientran/handlergen/internal/output"
)

func main() {
	if err := commands.RootCmd().Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
