package squash

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jvillar/filtersquash/internal/filter"
	"github.com/jvillar/filtersquash/internal/output"
)

// Directory is the remote filter store. All three operations act on the
// authenticated account behind the handle.
type Directory interface {
	ListFilters(ctx context.Context) ([]filter.Rule, error)
	CreateFilter(ctx context.Context, r filter.Rule) (string, error)
	DeleteFilter(ctx context.Context, id string) error
}

// Result tallies a finished (or aborted) run.
type Result struct {
	Filters int  `json:"filters"`
	Groups  int  `json:"groups"`
	Created int  `json:"created"`
	Deleted int  `json:"deleted"`
	DryRun  bool `json:"dry_run"`
}

// Runner drives one squash pass over the directory. Groups are processed
// strictly in listing order and the first directory failure aborts the
// whole run, so a half-applied merge is never followed by further writes.
type Runner struct {
	Dir Directory
	Out *output.Formatter

	// Apply enables real mutation. When false (the default) the runner
	// computes and logs every plan but never calls create or delete.
	Apply bool

	// Backup, when set, is a path that receives a YAML dump of every
	// listed filter before any mutation is attempted.
	Backup string
}

// Run lists the directory, partitions the rules by action and squashes
// every eligible group. The returned Result is valid even on error and
// reflects the mutations applied (or, in dry-run, planned) so far.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	res := Result{DryRun: !r.Apply}

	rules, err := r.Dir.ListFilters(ctx)
	if err != nil {
		return res, err
	}
	res.Filters = len(rules)

	if len(rules) == 0 {
		r.Out.Warningf("No filters found.")
		return res, nil
	}

	if r.Backup != "" {
		if err := writeBackup(r.Backup, rules); err != nil {
			return res, fmt.Errorf("write backup: %w", err)
		}
		r.Out.Infof("Backed up %d filters to %s", len(rules), r.Backup)
	}

	groups, err := filter.GroupByAction(rules)
	if err != nil {
		return res, &PreconditionError{Err: err}
	}
	res.Groups = len(groups)
	r.Out.Verbosef("Grouped %d filters into %d distinct actions", len(rules), len(groups))

	for _, g := range groups {
		if len(g.Rules) < 2 {
			continue
		}
		created, deleted, err := r.squashGroup(ctx, g)
		res.Created += created
		res.Deleted += deleted
		if err != nil {
			return res, err
		}
	}

	if res.Created > 0 {
		r.Out.Infof("Squashed %d filters into %d new filters.", res.Deleted, res.Created)
	} else {
		r.Out.Infof("No filters were squashed.")
	}
	return res, nil
}

// squashGroup applies (or, in dry-run, only reports) the merge plan for a
// single group. The create must succeed before any original is deleted;
// if a delete then fails, the merged rule already covers the group and
// the leftovers are redundant rather than lost.
func (r *Runner) squashGroup(ctx context.Context, g filter.Group) (created, deleted int, err error) {
	r.Out.Verbosef("Action [%s] is shared by %d filters", g.Action, len(g.Rules))

	plan, ok := filter.Squash(g)
	if !ok {
		r.Out.Verbosef("Filters couldn't be squashed")
		return 0, 0, nil
	}

	r.Out.Infof("Creating new filter: %s", plan.Create.Criteria)
	if r.Apply {
		id, err := r.Dir.CreateFilter(ctx, plan.Create)
		if err != nil {
			r.Out.Errorf("Creating the merged filter failed. Stopping before any originals are deleted.")
			return 0, 0, err
		}
		r.Out.Infof("Created filter %s", id)
	}
	created = 1

	for _, id := range plan.DeleteIDs {
		r.Out.Infof("Deleting filter %s...", id)
		if r.Apply {
			if err := r.Dir.DeleteFilter(ctx, id); err != nil {
				r.Out.Errorf("The merged filter was already created, so coverage is unchanged, but %d of its original filters remain and must be deleted by hand.", len(plan.DeleteIDs)-deleted)
				return created, deleted, err
			}
		}
		deleted++
	}
	return created, deleted, nil
}

func writeBackup(path string, rules []filter.Rule) error {
	data, err := yaml.Marshal(rules)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
