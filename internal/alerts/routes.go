package alerts

import (
	"fmt"

	"github.com/stackops/stackctl/internal/config"
)

// RoutingTable resolves alert labels to a receiver by first match.
// Built once from configuration; never mutated at runtime.
type RoutingTable struct {
	routes    []config.RouteSpec
	receivers map[string]config.ReceiverSpec
}

// NewRoutingTable builds a routing table from the alerting configuration.
// Returns an error if any route references an undeclared receiver.
func NewRoutingTable(cfg config.AlertingConfig) (*RoutingTable, error) {
	receivers := make(map[string]config.ReceiverSpec, len(cfg.Receivers))
	for _, r := range cfg.Receivers {
		receivers[r.Name] = r
	}

	for i, route := range cfg.Routes {
		if _, ok := receivers[route.Receiver]; !ok {
			return nil, fmt.Errorf("route %d: unknown receiver %q", i, route.Receiver)
		}
	}

	return &RoutingTable{routes: cfg.Routes, receivers: receivers}, nil
}

// Resolve returns the receiver for the given alert labels. Routes are
// evaluated in declaration order; the first route whose matchers are all
// satisfied wins. Returns false when no route matches.
func (t *RoutingTable) Resolve(labels map[string]string) (config.ReceiverSpec, bool) {
	for _, route := range t.routes {
		if matches(route.Match, labels) {
			return t.receivers[route.Receiver], true
		}
	}
	return config.ReceiverSpec{}, false
}

// matches reports whether every matcher key has an equal label value.
func matches(match, labels map[string]string) bool {
	for k, v := range match {
		if labels[k] != v {
			return false
		}
	}
	return true
}
