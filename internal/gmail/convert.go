package gmail

import (
	gmailv1 "google.golang.org/api/gmail/v1"

	"github.com/jvillar/filtersquash/internal/filter"
)

func ruleFromAPI(f *gmailv1.Filter) filter.Rule {
	r := filter.Rule{ID: f.Id}
	if c := f.Criteria; c != nil {
		r.Criteria = filter.Criteria{
			From:           c.From,
			To:             c.To,
			Subject:        c.Subject,
			Query:          c.Query,
			NegatedQuery:   c.NegatedQuery,
			HasAttachment:  c.HasAttachment,
			ExcludeChats:   c.ExcludeChats,
			Size:           c.Size,
			SizeComparison: c.SizeComparison,
		}
	}
	if a := f.Action; a != nil {
		r.Action = filter.Action{
			AddLabels:    a.AddLabelIds,
			RemoveLabels: a.RemoveLabelIds,
			Forward:      a.Forward,
		}
	}
	return r
}

func ruleToAPI(r filter.Rule) *gmailv1.Filter {
	f := &gmailv1.Filter{
		Id: r.ID,
		Criteria: &gmailv1.FilterCriteria{
			From:           r.Criteria.From,
			To:             r.Criteria.To,
			Subject:        r.Criteria.Subject,
			Query:          r.Criteria.Query,
			NegatedQuery:   r.Criteria.NegatedQuery,
			HasAttachment:  r.Criteria.HasAttachment,
			ExcludeChats:   r.Criteria.ExcludeChats,
			Size:           r.Criteria.Size,
			SizeComparison: r.Criteria.SizeComparison,
		},
	}
	if !r.Action.IsZero() {
		f.Action = &gmailv1.FilterAction{
			AddLabelIds:    r.Action.AddLabels,
			RemoveLabelIds: r.Action.RemoveLabels,
			Forward:        r.Action.Forward,
		}
	}
	return f
}
