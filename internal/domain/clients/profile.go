package clients

import (
	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// ValidContactType indica si t es un tipo de contacto conocido.
func ValidContactType(t string) bool {
	switch t {
	case entity.ContactPrimary, entity.ContactSecondary, entity.ContactAccounts,
		entity.ContactTechnical, entity.ContactProcurement, entity.ContactSiteManager:
		return true
	}
	return false
}

// ValidNoteType indica si t es un tipo de nota conocido.
func ValidNoteType(t string) bool {
	switch t {
	case entity.NoteGeneral, entity.NoteMeeting, entity.NotePhoneCall, entity.NoteEmail,
		entity.NoteVisit, entity.NoteComplaint, entity.NoteFollowUp, entity.NoteCreditReview:
		return true
	}
	return false
}

// ValidPriority indica si p es una prioridad conocida.
func ValidPriority(p string) bool {
	switch p {
	case entity.PriorityLow, entity.PriorityMedium, entity.PriorityHigh, entity.PriorityUrgent:
		return true
	}
	return false
}

// ScoreRating valida los cinco criterios (1 a 5) y fija puntaje promedio y categoría.
func ScoreRating(r *entity.ClientRating) error {
	criteria := []struct {
		field string
		value int
	}{
		{"payment_timeliness", r.PaymentTimeliness},
		{"communication", r.Communication},
		{"cooperation", r.Cooperation},
		{"volume_of_business", r.VolumeOfBusiness},
		{"profitability", r.Profitability},
	}
	sum := 0
	for _, c := range criteria {
		if c.value < 1 || c.value > 5 {
			return domain.Invalid(c.field, "debe estar entre 1 y 5")
		}
		sum += c.value
	}
	r.OverallScore = decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(criteria)))).Round(1)
	r.Category = RatingCategory(r.OverallScore)
	return nil
}

// RatingCategory >=4.5 EXCELLENT, >=4.0 GOOD, >=3.0 SATISFACTORY, >=2.0 NEEDS_IMPROVEMENT.
func RatingCategory(score decimal.Decimal) string {
	switch {
	case score.GreaterThanOrEqual(decimal.RequireFromString("4.5")):
		return entity.RatingExcellent
	case score.GreaterThanOrEqual(decimal.NewFromInt(4)):
		return entity.RatingGood
	case score.GreaterThanOrEqual(decimal.NewFromInt(3)):
		return entity.RatingSatisfactory
	case score.GreaterThanOrEqual(decimal.NewFromInt(2)):
		return entity.RatingNeedsImprovement
	default:
		return entity.RatingPoor
	}
}

// CanUseSite la sede debe ser del cliente y estar activa.
func CanUseSite(s *entity.ClientSite, clientID string) error {
	if s.ClientID != clientID {
		return domain.Invalid("site_id", "la sede es de otro cliente")
	}
	if !s.IsActive {
		return domain.Invalid("site_id", "la sede está inactiva")
	}
	return nil
}
