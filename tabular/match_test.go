package tabular

import "testing"

func TestMatchNameStrategies(t *testing.T) {
	have := []string{"Region", "Region Detail", "Net_Sales", "Margin %"}

	tests := []struct {
		want     string
		matched  string
		strategy string
	}{
		{"Region", "Region", "exact"},
		{"  region ", "Region", "fold"},
		{"REGION DETAIL", "Region Detail", "fold"},
		{"Reg", "Region", "substring"},
		{"net sales", "Net_Sales", "fuzzy"},
		{"net-sales", "Net_Sales", "fuzzy"},
		{"net.sales", "Net_Sales", "fuzzy"},
		{"Regoin", "Region", "fuzzy"},
	}
	for _, tc := range tests {
		i, strategy, ok := matchName(tc.want, have)
		if !ok {
			t.Errorf("matchName(%q): no match", tc.want)
			continue
		}
		if have[i] != tc.matched {
			t.Errorf("matchName(%q) = %q, want %q", tc.want, have[i], tc.matched)
		}
		if strategy != tc.strategy {
			t.Errorf("matchName(%q) strategy = %q, want %q", tc.want, strategy, tc.strategy)
		}
	}
}

func TestMatchNameNoMatch(t *testing.T) {
	if _, _, ok := matchName("Quantity", []string{"Region", "Sales"}); ok {
		t.Fatal("expected no match for unrelated name")
	}
}

func TestMatchSubstringPrefersShortest(t *testing.T) {
	have := []string{"Gross Region Detail", "Region"}
	i, _, ok := matchName("Regio", have)
	if !ok || have[i] != "Region" {
		t.Fatalf("got %v, want shortest candidate Region", have[i])
	}
}

func TestEditDistanceAtMostOne(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"region", "region", true},
		{"region", "regoin", true}, // adjacent transposition
		{"region", "regian", true}, // substitution
		{"region", "regon", true},  // deletion
		{"region", "regions", true},
		{"region", "margin", false},
		{"region", "rigeon", false}, // two edits apart
	}
	for _, tc := range tests {
		if got := editDistanceAtMostOne(tc.a, tc.b); got != tc.want {
			t.Errorf("editDistanceAtMostOne(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
