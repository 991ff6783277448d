package filter

import "testing"

func TestSenderOnly(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     string
		wantOK   bool
	}{
		{
			name:     "from only",
			criteria: Criteria{From: "alerts@example.com"},
			want:     "alerts@example.com",
			wantOK:   true,
		},
		{
			name:     "empty criteria",
			criteria: Criteria{},
			wantOK:   false,
		},
		{
			name:     "from plus subject",
			criteria: Criteria{From: "a@x.com", Subject: "foo"},
			wantOK:   false,
		},
		{
			name:     "from plus has attachment",
			criteria: Criteria{From: "a@x.com", HasAttachment: true},
			wantOK:   false,
		},
		{
			name:     "from plus size",
			criteria: Criteria{From: "a@x.com", Size: 1024, SizeComparison: "larger"},
			wantOK:   false,
		},
		{
			name:     "subject only",
			criteria: Criteria{Subject: "invoice"},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.criteria.SenderOnly()
			if ok != tt.wantOK {
				t.Fatalf("SenderOnly() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("SenderOnly() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionKeyOrderIndependent(t *testing.T) {
	a := Action{AddLabels: []string{"Label_1", "Label_2"}, RemoveLabels: []string{"INBOX"}}
	b := Action{AddLabels: []string{"Label_2", "Label_1"}, RemoveLabels: []string{"INBOX"}}

	if a.Key() != b.Key() {
		t.Errorf("Key() differs for reordered labels: %q vs %q", a.Key(), b.Key())
	}
}

func TestActionKeyDistinguishesActions(t *testing.T) {
	tests := []struct {
		name string
		a, b Action
	}{
		{
			name: "different labels",
			a:    Action{AddLabels: []string{"Label_1"}},
			b:    Action{AddLabels: []string{"Label_2"}},
		},
		{
			name: "add vs remove",
			a:    Action{AddLabels: []string{"INBOX"}},
			b:    Action{RemoveLabels: []string{"INBOX"}},
		},
		{
			name: "forward vs label",
			a:    Action{Forward: "me@example.com"},
			b:    Action{AddLabels: []string{"me@example.com"}},
		},
		{
			name: "separator inside a label",
			a:    Action{AddLabels: []string{"a,b"}},
			b:    Action{AddLabels: []string{"a", "b"}},
		},
		{
			name: "label spanning a list boundary",
			a:    Action{AddLabels: []string{"a", "b,c"}},
			b:    Action{AddLabels: []string{"a,b", "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a.Key() == tt.b.Key() {
				t.Errorf("Key() collides: %q", tt.a.Key())
			}
		})
	}
}

func TestActionIsZero(t *testing.T) {
	if !(Action{}).IsZero() {
		t.Error("empty action should be zero")
	}
	if (Action{Forward: "x@y.com"}).IsZero() {
		t.Error("forward action should not be zero")
	}
	if (Action{RemoveLabels: []string{"UNREAD"}}).IsZero() {
		t.Error("remove-label action should not be zero")
	}
}

func TestCriteriaString(t *testing.T) {
	c := Criteria{From: "a@x.com", Subject: "foo", HasAttachment: true}
	got := c.String()
	want := "from:a@x.com subject:foo has:attachment"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestActionString(t *testing.T) {
	a := Action{AddLabels: []string{"TRASH"}, RemoveLabels: []string{"INBOX", "UNREAD"}}
	got := a.String()
	want := "add:TRASH remove:INBOX,UNREAD"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
