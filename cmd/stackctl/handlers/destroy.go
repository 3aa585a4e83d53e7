package handlers

import (
	"context"
	"log"

	"github.com/stackops/stackctl/internal/provision"
)

// Destroy tears down one stack component, or the full stack, on a cloud.
//
// The argument contract matches Apply. "all" destroys in the reverse of
// the apply order so dependents go before their dependencies: monitoring,
// storage, kubernetes, networking.
func Destroy(ctx context.Context, cloudArg, componentArg, configPath string) error {
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

	log.Printf("Destroying %s on %s", component, cloud)

	pctx := provision.NewContext(ctx, cfg, cloud, newTerraformRunner())
	return provision.RunPhases(pctx, provision.BuildPhases(component, provision.ActionDestroy))
}
