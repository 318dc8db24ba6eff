package clients

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/clients"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

// AddContact registra un contacto. El email no se repite dentro del cliente.
func (uc *ClientUseCase) AddContact(ctx context.Context, actor policy.Actor, clientID string, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if err := policy.Authorize(actor, policy.EditClientProfile, nil); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name", "es obligatorio")
	}
	kind := in.ContactType
	if kind == "" {
		kind = entity.ContactSecondary
	}
	if !clients.ValidContactType(kind) {
		return nil, domain.Invalid("contact_type", "tipo de contacto desconocido")
	}
	var ct *entity.ClientContact
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		if _, err := tx.Clients().GetByID(ctx, clientID); err != nil {
			return err
		}
		now := time.Now()
		ct = &entity.ClientContact{
			ID:          uuid.New().String(),
			ClientID:    clientID,
			Name:        strings.TrimSpace(in.Name),
			Position:    in.Position,
			ContactType: kind,
			Email:       strings.TrimSpace(in.Email),
			Phone:       in.Phone,
			Mobile:      in.Mobile,
			Notes:       in.Notes,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.ClientProfiles().CreateContact(ctx, ct); err != nil {
			return err
		}
		return uc.history(ctx, tx, clientID, entity.HistoryContactAdded, "", ct.Name, ct.ContactType, actor.ID)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToContactResponse(ct)
	return &out, nil
}

// ListContacts contactos del cliente, activos e inactivos.
func (uc *ClientUseCase) ListContacts(ctx context.Context, clientID string) ([]dto.ContactResponse, error) {
	if _, err := uc.repos.Clients().GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	list, err := uc.repos.ClientProfiles().ListContacts(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ToContactResponse(c))
	}
	return out, nil
}

// DeactivateContact da de baja un contacto sin borrarlo.
func (uc *ClientUseCase) DeactivateContact(ctx context.Context, actor policy.Actor, contactID string) (*dto.ContactResponse, error) {
	if err := policy.Authorize(actor, policy.EditClientProfile, nil); err != nil {
		return nil, err
	}
	var ct *entity.ClientContact
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		ct, err = tx.ClientProfiles().GetContact(ctx, contactID)
		if err != nil {
			return err
		}
		ct.IsActive = false
		ct.UpdatedAt = time.Now()
		return tx.ClientProfiles().UpdateContact(ctx, ct)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToContactResponse(ct)
	return &out, nil
}

// AddSite registra una obra del cliente. Si llega como principal desplaza a la anterior;
// la primera sede del cliente queda como principal.
func (uc *ClientUseCase) AddSite(ctx context.Context, actor policy.Actor, clientID string, in dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	if err := policy.Authorize(actor, policy.EditClientProfile, nil); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.SiteName) == "" {
		return nil, domain.Invalid("site_name", "es obligatorio")
	}
	if strings.TrimSpace(in.Address) == "" {
		return nil, domain.Invalid("address", "es obligatoria")
	}
	var site *entity.ClientSite
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		if _, err := tx.Clients().GetForUpdate(ctx, clientID); err != nil {
			return err
		}
		existing, err := tx.ClientProfiles().ListSites(ctx, clientID)
		if err != nil {
			return err
		}
		isMain := in.IsMainSite || len(existing) == 0
		if isMain && len(existing) > 0 {
			if err := tx.ClientProfiles().ClearMainSite(ctx, clientID); err != nil {
				return err
			}
		}
		now := time.Now()
		site = &entity.ClientSite{
			ID:             uuid.New().String(),
			ClientID:       clientID,
			SiteName:       strings.TrimSpace(in.SiteName),
			SiteCode:       in.SiteCode,
			Address:        strings.TrimSpace(in.Address),
			City:           in.City,
			Province:       in.Province,
			GPSCoordinates: in.GPSCoordinates,
			SiteManager:    in.SiteManager,
			SitePhone:      in.SitePhone,
			IsActive:       true,
			IsMainSite:     isMain,
			Notes:          in.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.ClientProfiles().CreateSite(ctx, site); err != nil {
			return err
		}
		return uc.history(ctx, tx, clientID, entity.HistorySiteAdded, "", site.SiteName, site.Address, actor.ID)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToSiteResponse(site)
	return &out, nil
}

// ListSites sedes del cliente, la principal primero.
func (uc *ClientUseCase) ListSites(ctx context.Context, clientID string) ([]dto.SiteResponse, error) {
	if _, err := uc.repos.Clients().GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	list, err := uc.repos.ClientProfiles().ListSites(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SiteResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToSiteResponse(s))
	}
	return out, nil
}

// SetMainSite marca la sede como principal y desmarca las demás del cliente.
func (uc *ClientUseCase) SetMainSite(ctx context.Context, actor policy.Actor, siteID string) (*dto.SiteResponse, error) {
	if err := policy.Authorize(actor, policy.EditClientProfile, nil); err != nil {
		return nil, err
	}
	var site *entity.ClientSite
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		site, err = tx.ClientProfiles().GetSite(ctx, siteID)
		if err != nil {
			return err
		}
		if !site.IsActive {
			return domain.Invalid("site_id", "la sede está inactiva")
		}
		if site.IsMainSite {
			return nil
		}
		if err := tx.ClientProfiles().ClearMainSite(ctx, site.ClientID); err != nil {
			return err
		}
		site.IsMainSite = true
		site.UpdatedAt = time.Now()
		return tx.ClientProfiles().UpdateSite(ctx, site)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToSiteResponse(site)
	return &out, nil
}

// AddNote registra una nota de seguimiento.
func (uc *ClientUseCase) AddNote(ctx context.Context, actor policy.Actor, clientID string, in dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if err := policy.Authorize(actor, policy.EditClientProfile, nil); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Subject) == "" {
		return nil, domain.Invalid("subject", "es obligatorio")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, domain.Invalid("content", "es obligatorio")
	}
	kind := in.NoteType
	if kind == "" {
		kind = entity.NoteGeneral
	}
	if !clients.ValidNoteType(kind) {
		return nil, domain.Invalid("note_type", "tipo de nota desconocido")
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !clients.ValidPriority(priority) {
		return nil, domain.Invalid("priority", "prioridad desconocida")
	}
	var n *entity.ClientNote
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		if _, err := tx.Clients().GetByID(ctx, clientID); err != nil {
			return err
		}
		now := time.Now()
		n = &entity.ClientNote{
			ID:           uuid.New().String(),
			ClientID:     clientID,
			NoteType:     kind,
			Subject:      strings.TrimSpace(in.Subject),
			Content:      in.Content,
			Priority:     priority,
			FollowUpDate: in.FollowUpDate,
			CreatedBy:    actor.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.ClientProfiles().CreateNote(ctx, n); err != nil {
			return err
		}
		return uc.history(ctx, tx, clientID, entity.HistoryNoteAdded, "", n.Subject, n.NoteType, actor.ID)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToNoteResponse(n)
	return &out, nil
}

// ListNotes notas del cliente, más reciente primero. openOnly oculta las resueltas.
func (uc *ClientUseCase) ListNotes(ctx context.Context, clientID string, openOnly bool) ([]dto.NoteResponse, error) {
	if _, err := uc.repos.Clients().GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	list, err := uc.repos.ClientProfiles().ListNotes(ctx, clientID, openOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NoteResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.ToNoteResponse(n))
	}
	return out, nil
}

// ResolveNote cierra la nota. Una nota resuelta no se vuelve a resolver.
func (uc *ClientUseCase) ResolveNote(ctx context.Context, actor policy.Actor, noteID string, in dto.ResolveNoteRequest) (*dto.NoteResponse, error) {
	if err := policy.Authorize(actor, policy.EditClientProfile, nil); err != nil {
		return nil, err
	}
	var n *entity.ClientNote
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		var err error
		n, err = tx.ClientProfiles().GetNote(ctx, noteID)
		if err != nil {
			return err
		}
		if n.IsResolved {
			return &domain.TransitionError{Entity: "client_note", From: "RESOLVED", To: "RESOLVED"}
		}
		now := time.Now()
		n.IsResolved = true
		n.ResolvedAt = &now
		n.ResolvedBy = actor.ID
		n.ResolutionNotes = in.ResolutionNotes
		n.UpdatedAt = now
		return tx.ClientProfiles().UpdateNote(ctx, n)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToNoteResponse(n)
	return &out, nil
}

// Rate califica al cliente. Una calificación por cliente y día.
func (uc *ClientUseCase) Rate(ctx context.Context, actor policy.Actor, clientID string, in dto.CreateRatingRequest) (*dto.RatingResponse, error) {
	if err := policy.Authorize(actor, policy.RateClient, nil); err != nil {
		return nil, err
	}
	now := time.Now()
	day := now
	if in.RatingDate != nil {
		day = *in.RatingDate
	}
	r := &entity.ClientRating{
		ID:                uuid.New().String(),
		ClientID:          clientID,
		RatingDate:        time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		PaymentTimeliness: in.PaymentTimeliness,
		Communication:     in.Communication,
		Cooperation:       in.Cooperation,
		VolumeOfBusiness:  in.VolumeOfBusiness,
		Profitability:     in.Profitability,
		Comments:          in.Comments,
		RatedBy:           actor.ID,
		CreatedAt:         now,
	}
	if err := clients.ScoreRating(r); err != nil {
		return nil, err
	}
	err := uc.txRunner.Run(ctx, func(tx repository.Repos) error {
		if _, err := tx.Clients().GetByID(ctx, clientID); err != nil {
			return err
		}
		if err := tx.ClientProfiles().CreateRating(ctx, r); err != nil {
			return err
		}
		return uc.history(ctx, tx, clientID, entity.HistoryRated, "", r.OverallScore.StringFixed(1), r.Category, actor.ID)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToRatingResponse(r)
	return &out, nil
}

// Ratings calificaciones del cliente, más reciente primero.
func (uc *ClientUseCase) Ratings(ctx context.Context, clientID string) ([]dto.RatingResponse, error) {
	if _, err := uc.repos.Clients().GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	list, err := uc.repos.ClientProfiles().ListRatings(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RatingResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.ToRatingResponse(r))
	}
	return out, nil
}
