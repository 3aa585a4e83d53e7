package alerts

import (
	"context"
	"fmt"
	"log"

	"github.com/stackops/stackctl/internal/platform/mimir"
)

// Pusher validates a tenant's rule directory and uploads it file by file.
type Pusher struct {
	client mimir.Client
}

// NewPusher creates a Pusher on top of a backend client.
func NewPusher(client mimir.Client) *Pusher {
	return &Pusher{client: client}
}

// Push loads and validates every rule file in dir, then uploads each one
// under the tenant id. Uploads happen strictly in order and the first
// failure aborts the rest; the backend keeps whatever was already loaded,
// matching a re-runnable, idempotent push.
func (p *Pusher) Push(ctx context.Context, tenantID, dir string) error {
	files, err := LoadDir(dir)
	if err != nil {
		return err
	}

	log.Printf("Pushing %d rule files for tenant %s", len(files), tenantID)

	for _, f := range files {
		if err := p.client.LoadRules(ctx, tenantID, f.Path); err != nil {
			return fmt.Errorf("failed to push %s: %w", f.Path, err)
		}
		log.Printf("  Loaded %s (namespace %s, %d groups)", f.Path, f.Namespace, len(f.Groups))
	}

	return nil
}

// Lint loads and validates every rule file in dir without any network
// calls. Returns the number of groups checked.
func Lint(dir string) (int, error) {
	files, err := LoadDir(dir)
	if err != nil {
		return 0, err
	}

	groups := 0
	for _, f := range files {
		groups += len(f.Groups)
	}
	return groups, nil
}
