package filter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Rule is a single mail filter as the directory stores it: an opaque
// directory-assigned ID, the matching criteria and the action applied to
// matching messages. A rule built locally (a merge candidate) has no ID
// until the directory accepts it.
type Rule struct {
	ID       string   `yaml:"id,omitempty" json:"id,omitempty"`
	Criteria Criteria `yaml:"criteria" json:"criteria"`
	Action   Action   `yaml:"action" json:"action"`
}

// Criteria mirrors the matching side of a Gmail filter. A zero field means
// the predicate is absent from the rule.
type Criteria struct {
	From           string `yaml:"from,omitempty" json:"from,omitempty"`
	To             string `yaml:"to,omitempty" json:"to,omitempty"`
	Subject        string `yaml:"subject,omitempty" json:"subject,omitempty"`
	Query          string `yaml:"query,omitempty" json:"query,omitempty"`
	NegatedQuery   string `yaml:"negated_query,omitempty" json:"negated_query,omitempty"`
	HasAttachment  bool   `yaml:"has_attachment,omitempty" json:"has_attachment,omitempty"`
	ExcludeChats   bool   `yaml:"exclude_chats,omitempty" json:"exclude_chats,omitempty"`
	Size           int64  `yaml:"size,omitempty" json:"size,omitempty"`
	SizeComparison string `yaml:"size_comparison,omitempty" json:"size_comparison,omitempty"`
}

// SenderOnly reports whether From is the only predicate set on the rule,
// returning the sender expression when it is. Rules carrying any other
// predicate must not be merged, so this is the eligibility test for
// squashing.
func (c Criteria) SenderOnly() (string, bool) {
	if c.From == "" {
		return "", false
	}
	rest := c
	rest.From = ""
	if rest != (Criteria{}) {
		return "", false
	}
	return c.From, true
}

// IsZero reports whether no predicate is set at all.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

func (c Criteria) String() string {
	var parts []string
	add := func(name, v string) {
		if v != "" {
			parts = append(parts, name+":"+v)
		}
	}
	add("from", c.From)
	add("to", c.To)
	add("subject", c.Subject)
	add("query", c.Query)
	add("negated_query", c.NegatedQuery)
	if c.HasAttachment {
		parts = append(parts, "has:attachment")
	}
	if c.ExcludeChats {
		parts = append(parts, "exclude:chats")
	}
	if c.Size != 0 {
		parts = append(parts, fmt.Sprintf("size:%s%d", sizeOp(c.SizeComparison), c.Size))
	}
	return strings.Join(parts, " ")
}

func sizeOp(cmp string) string {
	switch cmp {
	case "larger":
		return ">"
	case "smaller":
		return "<"
	}
	return ""
}

// Action is the effect a filter applies to matching mail. It is the
// grouping key for squashing: rules whose actions compare equal belong to
// the same group.
type Action struct {
	AddLabels    []string `yaml:"add_labels,omitempty" json:"add_labels,omitempty"`
	RemoveLabels []string `yaml:"remove_labels,omitempty" json:"remove_labels,omitempty"`
	Forward      string   `yaml:"forward,omitempty" json:"forward,omitempty"`
}

// IsZero reports whether the action does nothing. The directory never
// returns such a filter; seeing one means the input is malformed.
func (a Action) IsZero() bool {
	return len(a.AddLabels) == 0 && len(a.RemoveLabels) == 0 && a.Forward == ""
}

// Key returns a canonical textual form of the action, usable as a map
// key. Label order does not affect the key, so two actions that add the
// same labels in different order land in the same group. Labels are
// quoted so list boundaries survive any characters a label may contain.
func (a Action) Key() string {
	add := append([]string(nil), a.AddLabels...)
	rem := append([]string(nil), a.RemoveLabels...)
	sort.Strings(add)
	sort.Strings(rem)

	var b strings.Builder
	b.WriteString("add=")
	for _, l := range add {
		b.WriteString(strconv.Quote(l))
	}
	b.WriteString(";remove=")
	for _, l := range rem {
		b.WriteString(strconv.Quote(l))
	}
	b.WriteString(";forward=")
	b.WriteString(a.Forward)
	return b.String()
}

func (a Action) String() string {
	var parts []string
	if len(a.AddLabels) > 0 {
		parts = append(parts, "add:"+strings.Join(a.AddLabels, ","))
	}
	if len(a.RemoveLabels) > 0 {
		parts = append(parts, "remove:"+strings.Join(a.RemoveLabels, ","))
	}
	if a.Forward != "" {
		parts = append(parts, "forward:"+a.Forward)
	}
	return strings.Join(parts, " ")
}
