package handlers

import (
	"fmt"

	"github.com/stackops/stackctl/internal/util/prerequisites"
)

// Factory function variables for doctor - can be replaced in tests.
var (
	// checkAllPrereqs checks required and optional tools.
	checkAllPrereqs = prerequisites.CheckAll
)

// Doctor checks the client environment and prints one row per tool.
// Returns an error when a required tool is missing.
func Doctor() error {
	results := checkAllPrereqs()

	fmt.Println("Checking client tools...")
	for _, r := range results.Results {
		switch {
		case r.Found && r.Version != "":
			fmt.Printf("  ok       %-10s %s\n", r.Tool.Name, r.Version)
		case r.Found:
			fmt.Printf("  ok       %-10s\n", r.Tool.Name)
		case !r.Tool.Required:
			fmt.Printf("  missing  %-10s (optional)\n", r.Tool.Name)
		default:
			fmt.Printf("  missing  %-10s REQUIRED: %s\n", r.Tool.Name, r.Tool.InstallURL)
		}
	}

	if err := results.Error(); err != nil {
		return err
	}

	fmt.Println("All required tools found.")
	return nil
}
