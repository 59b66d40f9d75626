// Package test holds integration scenarios run by cmd/testrunner against a
// live creation server.
package test

import (
	"fmt"
	"sync/atomic"
)

// uniqueCounter provides unique IDs for test characters within a single run
var uniqueCounter uint64

// uniqueName appends a letter suffix, since character names may only
// contain letters.
func uniqueName(base string) string {
	counter := atomic.AddUint64(&uniqueCounter, 1)
	return base + counterToLetters(counter)
}

// counterToLetters converts a number to a letter sequence (1=a, 26=z, 27=aa, ...)
func counterToLetters(n uint64) string {
	if n == 0 {
		return "a"
	}
	result := ""
	for n > 0 {
		n--
		result = string(rune('a'+(n%26))) + result
		n /= 26
	}
	return result
}

// Verbose controls whether detailed logging is shown during tests
var Verbose = false

// TestResult represents the result of a test
type TestResult struct {
	Name    string
	Passed  bool
	Message string
}

func logAction(testName, action string) {
	if Verbose {
		fmt.Printf("  [%s] %s\n", testName, action)
	}
}

func pass(name, msg string) TestResult { return TestResult{Name: name, Passed: true, Message: msg} }

func fail(name, format string, args ...any) TestResult {
	return TestResult{Name: name, Passed: false, Message: fmt.Sprintf(format, args...)}
}

// RunAllTests runs every scenario in order.
func RunAllTests(serverAddr string) []TestResult {
	return []TestResult{
		TestGreeting(serverAddr),
		TestHelp(serverAddr),
		TestPointBuy(serverAddr),
		TestAppearanceCycle(serverAddr),
		TestNameRejected(serverAddr),
		TestRandomize(serverAddr),
		TestFinalize(serverAddr),
		TestQuit(serverAddr),
		TestConcurrentSessions(serverAddr),
	}
}

// PrintResults prints a summary table.
func PrintResults(results []TestResult) {
	passed := 0
	failed := 0

	fmt.Println("============================================================")
	fmt.Println("Integration Test Results")
	fmt.Println("============================================================")
	fmt.Println()

	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
			failed++
		} else {
			passed++
		}
		fmt.Printf("[%s] %s: %s\n", status, r.Name, r.Message)
	}

	fmt.Println()
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Total: %d | Passed: %d | Failed: %d\n", len(results), passed, failed)
	fmt.Println("------------------------------------------------------------")
}
