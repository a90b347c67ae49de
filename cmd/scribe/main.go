package main

import (
	"fmt"
	"os"
)

func main() {
	RootCmd.AddCommand(&HTTPCommand)

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
