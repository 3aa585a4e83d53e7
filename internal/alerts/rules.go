// Package alerts models the alerting configuration pushed to the
// multi-tenant metrics backend: Prometheus-style rule files, and the
// route/receiver table that maps alert labels to notification destinations.
//
// Rules and routes are declared statically in files; routing is a pure
// first-match lookup with no runtime state.
package alerts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sigs.k8s.io/yaml"
)

// RuleFile is one rule file as understood by the backend's ruler:
// a namespace holding one or more rule groups.
type RuleFile struct {
	// Path is where the file was loaded from. Not part of the wire format.
	Path string `json:"-"`

	// Namespace isolates this file's groups within the tenant.
	Namespace string `json:"namespace"`

	// Groups are the rule groups evaluated by the ruler.
	Groups []RuleGroup `json:"groups"`
}

// RuleGroup is a named set of rules sharing an evaluation interval.
type RuleGroup struct {
	Name     string `json:"name"`
	Interval string `json:"interval,omitempty"`
	Rules    []Rule `json:"rules"`
}

// Rule is a single alerting or recording rule.
type Rule struct {
	// Alert is the alert name. Exactly one of Alert and Record is set.
	Alert string `json:"alert,omitempty"`

	// Record is the recording rule name.
	Record string `json:"record,omitempty"`

	// Expr is the PromQL expression.
	Expr string `json:"expr"`

	// For is how long the expression must hold before firing.
	For string `json:"for,omitempty"`

	Labels      map[string]string `json:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// Validate checks the structural invariants of a rule file: a namespace,
// at least one group, unique non-empty group names, and well-formed rules.
func (f *RuleFile) Validate() error {
	var errs []error

	if f.Namespace == "" {
		errs = append(errs, errors.New("namespace is required"))
	}
	if len(f.Groups) == 0 {
		errs = append(errs, errors.New("at least one rule group is required"))
	}

	seen := make(map[string]bool, len(f.Groups))
	for _, g := range f.Groups {
		if g.Name == "" {
			errs = append(errs, errors.New("group name is required"))
			continue
		}
		if seen[g.Name] {
			errs = append(errs, fmt.Errorf("group %q: duplicate name", g.Name))
		}
		seen[g.Name] = true

		if len(g.Rules) == 0 {
			errs = append(errs, fmt.Errorf("group %q: no rules", g.Name))
		}
		for i, r := range g.Rules {
			if err := r.validate(); err != nil {
				errs = append(errs, fmt.Errorf("group %q rule %d: %w", g.Name, i, err))
			}
		}
	}

	return errors.Join(errs...)
}

func (r *Rule) validate() error {
	var errs []error

	switch {
	case r.Alert == "" && r.Record == "":
		errs = append(errs, errors.New("either alert or record is required"))
	case r.Alert != "" && r.Record != "":
		errs = append(errs, errors.New("alert and record are mutually exclusive"))
	}
	if r.Expr == "" {
		errs = append(errs, errors.New("expr is required"))
	}
	if r.Record != "" && r.For != "" {
		errs = append(errs, errors.New("recording rules cannot use for"))
	}

	return errors.Join(errs...)
}

// LoadFile parses and validates a single rule file.
func LoadFile(path string) (*RuleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}

	var f RuleFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	f.Path = path

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule file %s: %w", path, err)
	}

	return &f, nil
}

// LoadDir loads every .yaml/.yml rule file in a directory, sorted by name
// so pushes are deterministic. Group names must be unique across the whole
// directory because the ruler flattens them per tenant namespace.
func LoadDir(dir string) ([]*RuleFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no rule files found in %s", dir)
	}

	files := make([]*RuleFile, 0, len(paths))
	seen := make(map[string]string) // namespace/group -> file
	for _, path := range paths {
		f, err := LoadFile(path)
		if err != nil {
			return nil, err
		}

		for _, g := range f.Groups {
			key := f.Namespace + "/" + g.Name
			if prev, ok := seen[key]; ok {
				return nil, fmt.Errorf("group %q in %s already defined in %s", key, path, prev)
			}
			seen[key] = path
		}
		files = append(files, f)
	}

	return files, nil
}
