package clients_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/clients"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

func rating(p, c, co, v, pr int) *entity.ClientRating {
	return &entity.ClientRating{PaymentTimeliness: p, Communication: c, Cooperation: co, VolumeOfBusiness: v, Profitability: pr}
}

func TestScoreRating_PromedioYCategoria(t *testing.T) {
	cases := []struct {
		r        *entity.ClientRating
		score    string
		category string
	}{
		{rating(5, 4, 5, 4, 5), "4.6", entity.RatingExcellent},
		{rating(4, 4, 4, 4, 5), "4.2", entity.RatingGood},
		{rating(3, 3, 3, 3, 3), "3.0", entity.RatingSatisfactory},
		{rating(3, 3, 3, 3, 2), "2.8", entity.RatingNeedsImprovement},
		{rating(1, 1, 1, 1, 1), "1.0", entity.RatingPoor},
	}
	for _, tc := range cases {
		require.NoError(t, clients.ScoreRating(tc.r))
		assert.Equal(t, tc.score, tc.r.OverallScore.StringFixed(1))
		assert.Equal(t, tc.category, tc.r.Category)
	}
}

func TestScoreRating_FueraDeRango(t *testing.T) {
	err := clients.ScoreRating(rating(5, 0, 5, 5, 5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "communication")

	assert.ErrorIs(t, clients.ScoreRating(rating(5, 5, 5, 5, 6)), domain.ErrInvalidInput)
}

func TestRatingCategory_Bordes(t *testing.T) {
	assert.Equal(t, entity.RatingExcellent, clients.RatingCategory(decimal.RequireFromString("4.5")))
	assert.Equal(t, entity.RatingGood, clients.RatingCategory(decimal.RequireFromString("4.4")))
	assert.Equal(t, entity.RatingNeedsImprovement, clients.RatingCategory(decimal.NewFromInt(2)))
	assert.Equal(t, entity.RatingPoor, clients.RatingCategory(decimal.RequireFromString("1.9")))
}

func TestCanUseSite(t *testing.T) {
	site := &entity.ClientSite{ClientID: "c1", IsActive: true}
	assert.NoError(t, clients.CanUseSite(site, "c1"))
	assert.ErrorIs(t, clients.CanUseSite(site, "c2"), domain.ErrInvalidInput)

	site.IsActive = false
	assert.ErrorIs(t, clients.CanUseSite(site, "c1"), domain.ErrInvalidInput)
}

func TestValidContactAndNoteTypes(t *testing.T) {
	assert.True(t, clients.ValidContactType(entity.ContactSiteManager))
	assert.False(t, clients.ValidContactType("FRIEND"))
	assert.True(t, clients.ValidNoteType(entity.NoteCreditReview))
	assert.False(t, clients.ValidNoteType("GOSSIP"))
	assert.True(t, clients.ValidPriority(entity.PriorityUrgent))
	assert.False(t, clients.ValidPriority("NOW"))
}
