package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strazca-sk/monitor-dennikov/internal/domain"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		entry    domain.Entry
		keywords []string
		want     bool
	}{
		{
			name:     "keyword in title",
			entry:    domain.Entry{Title: "Nové pasy na ministerstve vnútra"},
			keywords: []string{"pasy"},
			want:     true,
		},
		{
			name:     "keyword in summary only",
			entry:    domain.Entry{Title: "Ranný prehľad", Summary: "Polícia preveruje útok v centre"},
			keywords: []string{"útok"},
			want:     true,
		},
		{
			name:     "case-insensitive with diacritics",
			entry:    domain.Entry{Title: "BEZPEČNOSŤ na hraniciach"},
			keywords: []string{"bezpečnosť"},
			want:     true,
		},
		{
			name:     "substring inside a longer word still matches",
			entry:    domain.Entry{Title: "Zápasy víkendu"},
			keywords: []string{"pasy"},
			want:     true,
		},
		{
			name:     "no keyword present",
			entry:    domain.Entry{Title: "Počasie na víkend", Summary: "Slnečno a teplo"},
			keywords: []string{"pasy", "doklady"},
			want:     false,
		},
		{
			name:     "empty keyword never matches everything",
			entry:    domain.Entry{Title: "Počasie na víkend"},
			keywords: []string{""},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.entry, tt.keywords))
		})
	}
}

func TestMatches_OrderIndependent(t *testing.T) {
	entry := domain.Entry{Title: "Minister vnútra o dokladoch"}

	forward := []string{"počasie", "doklady", "pasy"}
	reversed := []string{"pasy", "doklady", "počasie"}

	assert.Equal(t, Matches(entry, forward), Matches(entry, reversed))
	assert.True(t, Matches(entry, forward))
}

func TestKeywords_CombinesGlobalAndExtras(t *testing.T) {
	combined := Keywords([]string{"pasy", "doklady"}, []string{"hranica"})

	assert.Equal(t, []string{"pasy", "doklady", "hranica"}, combined)
}

func TestKeywords_DoesNotAliasGlobalSlice(t *testing.T) {
	global := []string{"pasy"}
	combined := Keywords(global, []string{"hranica"})
	combined[0] = "mutated"

	assert.Equal(t, []string{"pasy"}, global)
}
