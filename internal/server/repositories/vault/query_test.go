package vault

import (
	"reflect"
	"testing"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name              string
		page, limit       int
		wantPage, wantLim int
	}{
		{"defaults", 0, 0, 1, DefaultLimit},
		{"negative page", -5, 20, 1, 20},
		{"limit capped", 2, 500, 2, MaxLimit},
		{"kept as is", 3, 25, 3, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePage(tt.page, tt.limit)
			if page != tt.wantPage || limit != tt.wantLim {
				t.Fatalf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.limit, page, limit, tt.wantPage, tt.wantLim)
			}
		})
	}
}

func TestOrderByClause(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"allowed field desc default", "siteName", "", "ORDER BY site_name DESC"},
		{"allowed field asc", "updatedAt", "asc", "ORDER BY updated_at ASC"},
		{"asc is case-insensitive", "email", "ASC", "ORDER BY email ASC"},
		{"unknown field falls back", "unknownField", "asc", "ORDER BY created_at ASC"},
		{"injection attempt falls back", "created_at; DROP TABLE vault_entries", "", "ORDER BY created_at DESC"},
		{"unknown order means desc", "username", "sideways", "ORDER BY username DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orderByClause(tt.sortBy, tt.sortOrder); got != tt.want {
				t.Fatalf("orderByClause(%q, %q) = %q, want %q", tt.sortBy, tt.sortOrder, got, tt.want)
			}
		})
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"under_score", `under\_score`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Fatalf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanTags(t *testing.T) {
	got := cleanTags([]string{"work", "", "  ", "social"})
	want := []string{"work", "social"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("cleanTags() = %v, want %v", got, want)
	}
}
