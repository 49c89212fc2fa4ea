package series

import "testing"

func TestResolveLabel(t *testing.T) {
	tests := []struct {
		name  string
		label any
		want  string
	}{
		{name: "plain string", label: "Journal Article", want: "Journal Article"},
		{name: "english preferred", label: map[string]any{"fr": "Article de revue", "en": "Journal Article"}, want: "Journal Article"},
		{name: "regional english matches", label: map[string]any{"en-GB": "Colour Plate", "fr": "Planche"}, want: "Colour Plate"},
		{name: "first variant when no english", label: map[string]any{"fr": "Article"}, want: "Article"},
		{name: "non-string label stringified", label: 42, want: "42"},
		{name: "nil falls back to id", label: nil, want: "someid"},
		{name: "empty string falls back to id", label: "", want: "someid"},
		{name: "empty mapping falls back to id", label: map[string]any{}, want: "someid"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveLabel(tc.label, "someid"); got != tc.want {
				t.Fatalf("ResolveLabel(%v) = %q, want %q", tc.label, got, tc.want)
			}
		})
	}
}

func TestLabels_FirstSeenWins(t *testing.T) {
	l := Labels{}
	l.Put("cern", "CERN")
	l.Put("cern", "European Organization for Nuclear Research")
	if l["cern"] != "CERN" {
		t.Fatalf("earlier label should be kept, got %q", l["cern"])
	}
	l.Put("", "ignored")
	if _, ok := l[""]; ok {
		t.Fatalf("empty ids must not be recorded")
	}
}
