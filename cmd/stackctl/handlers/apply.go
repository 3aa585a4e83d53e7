// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/stackops/stackctl/internal/config"
	"github.com/stackops/stackctl/internal/platform/terraform"
	"github.com/stackops/stackctl/internal/provision"
	"github.com/stackops/stackctl/internal/util/prerequisites"
)

// errInvalidComponent is printed verbatim; CI jobs match on the exact text.
var errInvalidComponent = errors.New("Invalid component.")

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newTerraformRunner creates the terraform executor.
	newTerraformRunner = func() terraform.Runner {
		return terraform.NewExecRunner()
	}

	// checkDefaultPrereqs runs prerequisite checks.
	checkDefaultPrereqs = prerequisites.CheckDefault

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// findConfigFile finds the default config file (for testing injection).
	findConfigFile = config.FindConfigFile
)

// Apply provisions one stack component, or the full stack, on a cloud.
//
// The workflow is the same for every component:
//  1. Validates the cloud and component arguments
//  2. Loads stackctl.yaml when present; defaults apply without one
//  3. Verifies required client tools are on PATH
//  4. Runs terraform init, plan, apply per component directory, in order,
//     aborting on the first failure
//
// Cloud credentials are taken from the environment and passed through to
// terraform untouched.
func Apply(ctx context.Context, cloudArg, componentArg, configPath string) error {
	cloud, component, err := parseTarget(cloudArg, componentArg)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if err := checkPrerequisites(); err != nil {
		return err
	}

	log.Printf("Applying %s on %s", component, cloud)

	pctx := provision.NewContext(ctx, cfg, cloud, newTerraformRunner())
	return provision.RunPhases(pctx, provision.BuildPhases(component, provision.ActionApply))
}

// parseTarget validates the cloud and component CLI arguments.
func parseTarget(cloudArg, componentArg string) (config.Cloud, config.Component, error) {
	cloud := config.Cloud(cloudArg)
	if !cloud.IsValid() {
		return "", "", fmt.Errorf("invalid cloud %q: valid clouds are %v", cloudArg, config.ValidClouds())
	}

	component := config.Component(componentArg)
	if !component.IsValid() {
		return "", "", errInvalidComponent
	}

	return cloud, component, nil
}

// loadConfig loads the configuration file, falling back to defaults when
// none exists. The apply driver predates the config file and must keep
// working in checkouts that only carry the terraform directories.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return &config.Config{}, nil
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// checkPrerequisites verifies required client tools are available.
func checkPrerequisites() error {
	results := checkDefaultPrereqs()

	for _, r := range results.Results {
		if r.Found {
			version := r.Version
			if version == "" {
				version = "unknown version"
			}
			log.Printf("  Found %s (%s)", r.Tool.Name, version)
		}
	}

	if err := results.Error(); err != nil {
		return fmt.Errorf("prerequisites check failed: %w", err)
	}

	return nil
}
