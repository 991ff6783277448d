package filter

import "fmt"

// Group is the set of rules sharing one action. Groups are rebuilt from a
// fresh listing on every run and never persisted.
type Group struct {
	Action Action
	Rules  []Rule
}

// GroupByAction partitions rules by action equality. Order is preserved:
// rules keep their listing order within a group, and groups appear in the
// order their action was first seen. A rule without an action is a
// malformed listing and fails the whole partition.
func GroupByAction(rules []Rule) ([]Group, error) {
	index := make(map[string]int, len(rules))
	var groups []Group

	for _, r := range rules {
		if r.Action.IsZero() {
			return nil, fmt.Errorf("filter %q has no action", r.ID)
		}
		key := r.Action.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Action: r.Action})
		}
		groups[i].Rules = append(groups[i].Rules, r)
	}
	return groups, nil
}
