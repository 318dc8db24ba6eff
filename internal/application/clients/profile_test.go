package clients_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
)

func TestAddContact_EmailUnicoPorCliente(t *testing.T) {
	uc, store := newUseCase()
	c := createClient(t, uc, "")

	first, err := uc.AddContact(ctx, hce, c.ID, dto.CreateContactRequest{Name: "Ana Ruiz", Email: "ana@andina.co"})
	require.NoError(t, err)
	assert.Equal(t, entity.ContactSecondary, first.ContactType)
	assert.True(t, first.IsActive)

	_, err = uc.AddContact(ctx, hce, c.ID, dto.CreateContactRequest{Name: "Ana R.", Email: "ANA@andina.co"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	other := createClient(t, uc, "")
	_, err = uc.AddContact(ctx, hce, other.ID, dto.CreateContactRequest{Name: "Ana Ruiz", Email: "ana@andina.co"})
	assert.NoError(t, err)

	list, err := uc.ListContacts(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	var added int
	for _, h := range store.History() {
		if h.Action == entity.HistoryContactAdded {
			added++
		}
	}
	assert.Equal(t, 2, added)
}

func TestAddContact_Validaciones(t *testing.T) {
	uc, _ := newUseCase()
	c := createClient(t, uc, "")

	_, err := uc.AddContact(ctx, hce, c.ID, dto.CreateContactRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddContact(ctx, hce, c.ID, dto.CreateContactRequest{Name: "Ana", ContactType: "FRIEND"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddContact(ctx, hce, "no-existe", dto.CreateContactRequest{Name: "Ana"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.AddContact(ctx, policy.Actor{ID: "d", Role: entity.RoleDriver}, c.ID, dto.CreateContactRequest{Name: "Ana"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeactivateContact(t *testing.T) {
	uc, _ := newUseCase()
	c := createClient(t, uc, "")
	ct, err := uc.AddContact(ctx, hce, c.ID, dto.CreateContactRequest{Name: "Luis", ContactType: entity.ContactAccounts})
	require.NoError(t, err)

	out, err := uc.DeactivateContact(ctx, hce, ct.ID)
	require.NoError(t, err)
	assert.False(t, out.IsActive)

	list, err := uc.ListContacts(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsActive)
}

func TestAddSite_UnaSolaPrincipal(t *testing.T) {
	uc, _ := newUseCase()
	c := createClient(t, uc, "")

	first, err := uc.AddSite(ctx, hce, c.ID, dto.CreateSiteRequest{SiteName: "Torre Norte", Address: "Cra 7 # 100-20"})
	require.NoError(t, err)
	assert.True(t, first.IsMainSite, "la primera sede queda como principal")

	second, err := uc.AddSite(ctx, hce, c.ID, dto.CreateSiteRequest{SiteName: "Bodega Sur", Address: "Calle 13 # 68-10"})
	require.NoError(t, err)
	assert.False(t, second.IsMainSite)

	third, err := uc.AddSite(ctx, hce, c.ID, dto.CreateSiteRequest{SiteName: "Puente 80", Address: "Av 80", IsMainSite: true})
	require.NoError(t, err)
	assert.True(t, third.IsMainSite)

	sites, err := uc.ListSites(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, sites, 3)
	assert.Equal(t, third.ID, sites[0].ID)
	mains := 0
	for _, s := range sites {
		if s.IsMainSite {
			mains++
		}
	}
	assert.Equal(t, 1, mains)

	moved, err := uc.SetMainSite(ctx, fsm, second.ID)
	require.NoError(t, err)
	assert.True(t, moved.IsMainSite)
	sites, err = uc.ListSites(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, sites[0].ID)
	assert.False(t, sites[1].IsMainSite)
	assert.False(t, sites[2].IsMainSite)
}

func TestAddSite_NombreDuplicadoYValidaciones(t *testing.T) {
	uc, _ := newUseCase()
	c := createClient(t, uc, "")
	_, err := uc.AddSite(ctx, hce, c.ID, dto.CreateSiteRequest{SiteName: "Torre Norte", Address: "Cra 7"})
	require.NoError(t, err)

	_, err = uc.AddSite(ctx, hce, c.ID, dto.CreateSiteRequest{SiteName: "torre norte", Address: "Cra 9"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.AddSite(ctx, hce, c.ID, dto.CreateSiteRequest{SiteName: "Otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNotes_ResolverUnaVez(t *testing.T) {
	uc, store := newUseCase()
	c := createClient(t, uc, "")
	follow := time.Now().AddDate(0, 0, 7)

	n, err := uc.AddNote(ctx, hce, c.ID, dto.CreateNoteRequest{
		NoteType: entity.NoteComplaint, Subject: "Andamio dañado", Content: "Llegó con una cruceta doblada", FollowUpDate: &follow,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PriorityMedium, n.Priority)
	assert.False(t, n.IsResolved)
	_, err = uc.AddNote(ctx, hce, c.ID, dto.CreateNoteRequest{Subject: "Visita", Content: "Reunión en obra"})
	require.NoError(t, err)

	resolved, err := uc.ResolveNote(ctx, fsm, n.ID, dto.ResolveNoteRequest{ResolutionNotes: "Se reemplazó la pieza"})
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)
	assert.Equal(t, fsm.ID, resolved.ResolvedBy)
	require.NotNil(t, resolved.ResolvedAt)

	_, err = uc.ResolveNote(ctx, fsm, n.ID, dto.ResolveNoteRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	open, err := uc.ListNotes(ctx, c.ID, true)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Visita", open[0].Subject)
	assert.Equal(t, entity.NoteGeneral, open[0].NoteType)

	all, err := uc.ListNotes(ctx, c.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	var noted int
	for _, h := range store.History() {
		if h.Action == entity.HistoryNoteAdded {
			noted++
		}
	}
	assert.Equal(t, 2, noted)
}

func TestAddNote_Validaciones(t *testing.T) {
	uc, _ := newUseCase()
	c := createClient(t, uc, "")

	_, err := uc.AddNote(ctx, hce, c.ID, dto.CreateNoteRequest{Subject: "", Content: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddNote(ctx, hce, c.ID, dto.CreateNoteRequest{Subject: "x", Content: "x", Priority: "NOW"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddNote(ctx, hce, c.ID, dto.CreateNoteRequest{Subject: "x", Content: "x", NoteType: "GOSSIP"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRate_UnaPorDia(t *testing.T) {
	uc, _ := newUseCase()
	c := createClient(t, uc, "")
	day := time.Date(2026, 5, 4, 15, 30, 0, 0, time.UTC)
	in := dto.CreateRatingRequest{
		RatingDate: &day, PaymentTimeliness: 5, Communication: 4, Cooperation: 5, VolumeOfBusiness: 4, Profitability: 5,
	}

	r, err := uc.Rate(ctx, fsm, c.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "4.6", r.OverallScore.StringFixed(1))
	assert.Equal(t, entity.RatingExcellent, r.Category)
	assert.Equal(t, "2026-05-04", r.RatingDate)

	later := day.Add(3 * time.Hour)
	in.RatingDate = &later
	_, err = uc.Rate(ctx, fsm, c.ID, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	next := day.AddDate(0, 0, 1)
	in.RatingDate = &next
	in.Profitability = 1
	_, err = uc.Rate(ctx, fsm, c.ID, in)
	require.NoError(t, err)

	list, err := uc.Ratings(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-05-05", list[0].RatingDate)
}

func TestRate_ValidacionYPermisos(t *testing.T) {
	uc, _ := newUseCase()
	c := createClient(t, uc, "")

	_, err := uc.Rate(ctx, fsm, c.ID, dto.CreateRatingRequest{PaymentTimeliness: 6, Communication: 3, Cooperation: 3, VolumeOfBusiness: 3, Profitability: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Rate(ctx, hce, c.ID, dto.CreateRatingRequest{PaymentTimeliness: 3, Communication: 3, Cooperation: 3, VolumeOfBusiness: 3, Profitability: 3})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
