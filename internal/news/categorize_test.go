package news

import "testing"

func TestCategorize_PriorityOrder(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		description string
		want        string
	}{
		{
			name:  "aribio outranks regulation",
			title: "AriBio seeks FDA approval for AR1001",
			want:  "aribio",
		},
		{
			name:  "aribio korean name",
			title: "아리바이오, 3상 임상 순항",
			want:  "aribio",
		},
		{
			name:  "regulation outranks competition",
			title: "FDA grants full approval to lecanemab",
			want:  "regulation",
		},
		{
			name:  "competition outranks market",
			title: "Biogen stock jumps on pipeline news",
			want:  "competition",
		},
		{
			name:  "market outranks research",
			title: "Alzheimer drug market to hit $13 billion, study says",
			want:  "market",
		},
		{
			name:  "pure research",
			title: "New tau pathology mechanism discovered",
			want:  "research",
		},
		{
			name:  "korean regulation keyword",
			title: "식약처, 치매 신약 허가 심사 착수",
			want:  "regulation",
		},
		{
			name:  "no keyword falls back to research",
			title: "Seoul conference draws record attendance",
			want:  "research",
		},
		{
			name:        "description also matched",
			title:       "Quarterly update",
			description: "Eisai reported Leqembi uptake figures",
			want:        "competition",
		},
		{
			name:  "case insensitive",
			title: "ARIBIO ANNOUNCES PARTNERSHIP",
			want:  "aribio",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Categorize(c.title, c.description); got != c.want {
				t.Errorf("Categorize(%q, %q) = %q, want %q", c.title, c.description, got, c.want)
			}
		})
	}
}

func TestValidCategory(t *testing.T) {
	for _, slug := range Categories {
		if !ValidCategory(slug) {
			t.Errorf("expected %q to be valid", slug)
		}
	}
	if ValidCategory("politics") {
		t.Error("unknown slug reported valid")
	}
	if ValidCategory("") {
		t.Error("empty slug reported valid")
	}
}
