package filter

import "strings"

// Separator joins the squashed sender expressions in the merged criteria.
// Gmail treats it as a disjunction, so the merged rule matches exactly the
// union of the originals.
const Separator = " OR "

// Plan is the directory mutation that squashes one group: create the
// merged rule, then delete the originals it replaces. Deletes must only
// run after the create succeeded.
type Plan struct {
	Create    Rule
	DeleteIDs []string
}

// Squash decides whether a group's rules can be merged into one. Only
// rules whose criteria is a lone sender match qualify; with fewer than two
// of those there is nothing to gain and ok is false. The merged rule joins
// the qualifying senders in their original order and carries the group's
// action unchanged.
func Squash(g Group) (plan Plan, ok bool) {
	var senders, ids []string
	for _, r := range g.Rules {
		if from, only := r.Criteria.SenderOnly(); only {
			senders = append(senders, from)
			ids = append(ids, r.ID)
		}
	}
	if len(senders) < 2 {
		return Plan{}, false
	}

	return Plan{
		Create: Rule{
			Criteria: Criteria{From: strings.Join(senders, Separator)},
			Action:   g.Action,
		},
		DeleteIDs: ids,
	}, true
}
