package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noobie-agent/internal/domain/model"
)

func articleWithTitle(title string) model.Article {
	return model.Article{Title: title, Summary: "summary", URL: "https://example.com"}
}

func TestDeduplicate_NearDuplicateDiscarded(t *testing.T) {
	articles := []model.Article{
		articleWithTitle("Fed Raises Interest Rates Again"),
		articleWithTitle("Fed Raises Interest Rates"),
	}

	unique := Deduplicate(articles)

	require.Len(t, unique, 1)
	assert.Equal(t, "Fed Raises Interest Rates Again", unique[0].Title)
}

func TestDeduplicate_DistinctTitlesRetained(t *testing.T) {
	articles := []model.Article{
		articleWithTitle("Markets Rally After Policy Shift"),
		articleWithTitle("New Satellite Launch Planned For June"),
		articleWithTitle("Drought Conditions Worsen Across Region"),
	}

	unique := Deduplicate(articles)

	require.Len(t, unique, 3)
}

func TestDeduplicate_BelowThresholdRetained(t *testing.T) {
	// 3 shared tokens, 6 in union: similarity 0.5, both survive.
	articles := []model.Article{
		articleWithTitle("alpha beta gamma delta"),
		articleWithTitle("alpha beta gamma epsilon zeta"),
	}

	unique := Deduplicate(articles)

	require.Len(t, unique, 2)
}

func TestDeduplicate_Idempotent(t *testing.T) {
	articles := []model.Article{
		articleWithTitle("Fed Raises Interest Rates Again"),
		articleWithTitle("Fed Raises Interest Rates"),
		articleWithTitle("Storm Causes Flooding Along Coast"),
		articleWithTitle("Tech Firm Announces Quarterly Results"),
	}

	once := Deduplicate(articles)
	twice := Deduplicate(once)

	assert.Equal(t, once, twice)
}

func TestDeduplicate_CaseInsensitive(t *testing.T) {
	articles := []model.Article{
		articleWithTitle("FED RAISES INTEREST RATES"),
		articleWithTitle("fed raises interest rates"),
	}

	unique := Deduplicate(articles)

	require.Len(t, unique, 1)
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "a b c", "a b c", 1},
		{"disjoint", "a b", "c d", 0},
		{"half overlap", "a b c", "a b d", 0.5},
		{"both empty", "", "", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := jaccard(titleTokens(tc.a), titleTokens(tc.b))
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}
