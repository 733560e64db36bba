package domain_test

import (
	"testing"

	"kqtrainer/internal/modules/roster/domain"
)

func rosterFixture() []domain.Client {
	return []domain.Client{
		{UserID: "u1", FirstName: "Ana", LastName: "Petrova", Email: "a@x.com"},
		{UserID: "u2", FirstName: "Bo", LastName: "Larsen", Email: "b@y.com"},
		{UserID: "u3", FirstName: "Charlie", LastName: "Ng", Email: "charlie.ng@gym.io"},
	}
}

func ids(clients []domain.Client) []string {
	out := make([]string, len(clients))
	for i, c := range clients {
		out[i] = c.UserID
	}
	return out
}

func TestFilterBlankQueryReturnsAllInOrder(t *testing.T) {
	t.Parallel()
	clients := rosterFixture()
	for _, query := range []string{"", "   ", "\t"} {
		got := domain.Filter(clients, query)
		if len(got) != len(clients) {
			t.Fatalf("query %q: expected %d clients, got %d", query, len(clients), len(got))
		}
		for i := range got {
			if got[i].UserID != clients[i].UserID {
				t.Fatalf("query %q: order changed at %d: %v", query, i, ids(got))
			}
		}
	}
}

func TestFilterMatchesNameOrEmailCaseInsensitively(t *testing.T) {
	t.Parallel()
	clients := rosterFixture()

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"name substring", "ana", []string{"u1"}},
		{"uppercase query", "ANA", []string{"u1"}},
		{"last name", "larsen", []string{"u2"}},
		{"full name crosses space", "bo larsen", []string{"u2"}},
		{"email substring narrows past names", "a@", []string{"u1"}},
		{"email domain", "gym.io", []string{"u3"}},
		{"shared letter", "a", []string{"u1", "u2", "u3"}},
		{"no match", "zzz", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(domain.Filter(clients, tc.query))
			if len(got) != len(tc.want) {
				t.Fatalf("query %q: got %v, want %v", tc.query, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("query %q: got %v, want %v", tc.query, got, tc.want)
				}
			}
		})
	}
}

func TestFilterTreatsMissingFieldsAsNonMatching(t *testing.T) {
	t.Parallel()
	clients := []domain.Client{
		{UserID: "u1"},
		{UserID: "u2", Email: "present@x.com"},
	}
	got := domain.Filter(clients, "present")
	if len(got) != 1 || got[0].UserID != "u2" {
		t.Fatalf("expected only u2, got %v", ids(got))
	}
}

func TestBandForScoreThresholds(t *testing.T) {
	t.Parallel()
	cases := []struct {
		score float64
		want  domain.ScoreBand
	}{
		{95, domain.ScoreBandGood},
		{80, domain.ScoreBandGood},
		{79.9, domain.ScoreBandFair},
		{60, domain.ScoreBandFair},
		{59.9, domain.ScoreBandPoor},
		{0, domain.ScoreBandPoor},
	}
	for _, tc := range cases {
		if got := domain.BandForScore(tc.score); got != tc.want {
			t.Fatalf("BandForScore(%v) = %v, want %v", tc.score, got, tc.want)
		}
	}
}
