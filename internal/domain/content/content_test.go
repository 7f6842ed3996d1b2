package content

import "testing"

func TestNew_Valid(t *testing.T) {
	item, err := New(Params{
		ID:            "anchoring-bias",
		Title:         "Anchoring Bias",
		Category:      CognitiveBias,
		Summary:       "First impressions weigh heavily on later judgments.",
		Difficulty:    Beginner,
		RelevanceTags: []RelevanceTag{TagPricing},
		ReadTime:      7,
		Tags:          []string{"pricing", "negotiation"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if item.ID() != "anchoring-bias" {
		t.Errorf("ID() = %q", item.ID())
	}
	if item.Category() != CognitiveBias {
		t.Errorf("Category() = %q", item.Category())
	}
	if !item.HasRelevanceTag(TagPricing) {
		t.Error("HasRelevanceTag(pricing) = false")
	}
	if item.HasRelevanceTag(TagSales) {
		t.Error("HasRelevanceTag(sales) = true")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"empty id", Params{Title: "x", Category: CognitiveBias, Difficulty: Beginner}},
		{"empty title", Params{ID: "x", Category: CognitiveBias, Difficulty: Beginner}},
		{"bad category", Params{ID: "x", Title: "x", Category: "astrology", Difficulty: Beginner}},
		{"bad difficulty", Params{ID: "x", Title: "x", Category: CognitiveBias, Difficulty: "expert"}},
		{"bad relevance tag", Params{
			ID: "x", Title: "x", Category: CognitiveBias, Difficulty: Beginner,
			RelevanceTags: []RelevanceTag{"meme"},
		}},
		{"negative read time", Params{
			ID: "x", Title: "x", Category: CognitiveBias, Difficulty: Beginner, ReadTime: -1,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.p); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestCategory_DisplayName(t *testing.T) {
	if got := CognitiveBias.DisplayName(); got != "Cognitive Bias" {
		t.Errorf("DisplayName() = %q", got)
	}
	if got := Category("mystery").DisplayName(); got != "mystery" {
		t.Errorf("DisplayName() fallback = %q", got)
	}
}

func TestParseCategory(t *testing.T) {
	if _, err := ParseCategory("pricing-psychology"); err != nil {
		t.Errorf("ParseCategory valid: %v", err)
	}
	if _, err := ParseCategory("nope"); err == nil {
		t.Error("ParseCategory invalid: expected error")
	}
}

func TestDifficulty_Ordinal(t *testing.T) {
	tests := []struct {
		d    Difficulty
		want int
	}{
		{Beginner, 1},
		{Intermediate, 2},
		{Advanced, 3},
		{"unset", 0},
	}
	for _, tt := range tests {
		if got := tt.d.Ordinal(); got != tt.want {
			t.Errorf("Ordinal(%s) = %d, want %d", tt.d, got, tt.want)
		}
	}
}
