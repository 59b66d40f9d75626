package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lawnchairsociety/dungeonkit/test"
)

func main() {
	serverAddr := flag.String("addr", "localhost:4000", "Creation server address")
	verbose := flag.Bool("v", false, "Verbose output - show detailed actions for each test")
	flag.Parse()

	test.Verbose = *verbose

	fmt.Printf("Running integration tests against %s\n", *serverAddr)
	fmt.Println("Make sure 'charcreate -listen' is running!")
	fmt.Println()

	results := test.RunAllTests(*serverAddr)
	test.PrintResults(results)

	for _, result := range results {
		if !result.Passed {
			os.Exit(1)
		}
	}
}
