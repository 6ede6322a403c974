package main

import (
	"fmt"
	"log"
	"os"

	"vtstage/internal/cmd"
)

func main() {
	log.SetFlags(0)

	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
