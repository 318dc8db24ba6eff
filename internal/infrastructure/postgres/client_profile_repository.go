package postgres

import (
	"context"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

var _ repository.ClientProfileRepository = (*ClientProfileRepo)(nil)

const contactColumns = `id, client_id, name, position, contact_type, email, phone, mobile, notes, is_active,
	created_at, updated_at`

const siteColumns = `id, client_id, site_name, site_code, address, city, province, gps_coordinates, site_manager,
	site_phone, is_active, is_main_site, notes, created_at, updated_at`

const clientNoteColumns = `id, client_id, note_type, subject, content, priority, follow_up_date, is_resolved,
	resolved_at, resolved_by, resolution_notes, created_by, created_at, updated_at`

const ratingColumns = `id, client_id, rating_date, payment_timeliness, communication, cooperation,
	volume_of_business, profitability, overall_score, category, comments, rated_by, created_at`

// ClientProfileRepo contactos, sedes, notas y calificaciones.
type ClientProfileRepo struct {
	q Querier
}

func NewClientProfileRepository(q Querier) *ClientProfileRepo { return &ClientProfileRepo{q: q} }

func scanContact(row rowScanner) (*entity.ClientContact, error) {
	var c entity.ClientContact
	err := row.Scan(&c.ID, &c.ClientID, &c.Name, &c.Position, &c.ContactType, &c.Email, &c.Phone, &c.Mobile,
		&c.Notes, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateContact el índice único es (client_id, lower(email)) cuando hay email.
func (r *ClientProfileRepo) CreateContact(ctx context.Context, c *entity.ClientContact) error {
	_, err := r.q.Exec(ctx, `INSERT INTO client_contacts (`+contactColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		c.ID, c.ClientID, c.Name, c.Position, c.ContactType, c.Email, c.Phone, c.Mobile,
		c.Notes, c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return wrapErr("insert client contact", err)
	}
	return nil
}

func (r *ClientProfileRepo) GetContact(ctx context.Context, id string) (*entity.ClientContact, error) {
	c, err := scanContact(r.q.QueryRow(ctx, `SELECT `+contactColumns+` FROM client_contacts WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get client contact", err)
	}
	return c, nil
}

func (r *ClientProfileRepo) UpdateContact(ctx context.Context, c *entity.ClientContact) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE client_contacts SET name = $2, position = $3, contact_type = $4, email = $5, phone = $6,
			mobile = $7, notes = $8, is_active = $9, updated_at = $10
		WHERE id = $1`,
		c.ID, c.Name, c.Position, c.ContactType, c.Email, c.Phone, c.Mobile, c.Notes, c.IsActive, c.UpdatedAt)
	return expectOne("update client contact", tag, err)
}

func (r *ClientProfileRepo) ListContacts(ctx context.Context, clientID string) ([]*entity.ClientContact, error) {
	rows, err := r.q.Query(ctx, `SELECT `+contactColumns+` FROM client_contacts
		WHERE client_id = $1 ORDER BY name`, clientID)
	if err != nil {
		return nil, wrapErr("list client contacts", err)
	}
	out, err := collect(rows, scanContact)
	if err != nil {
		return nil, wrapErr("scan client contacts", err)
	}
	return out, nil
}

func scanSite(row rowScanner) (*entity.ClientSite, error) {
	var s entity.ClientSite
	err := row.Scan(&s.ID, &s.ClientID, &s.SiteName, &s.SiteCode, &s.Address, &s.City, &s.Province,
		&s.GPSCoordinates, &s.SiteManager, &s.SitePhone, &s.IsActive, &s.IsMainSite, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ClientProfileRepo) CreateSite(ctx context.Context, s *entity.ClientSite) error {
	_, err := r.q.Exec(ctx, `INSERT INTO client_sites (`+siteColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		s.ID, s.ClientID, s.SiteName, s.SiteCode, s.Address, s.City, s.Province, s.GPSCoordinates,
		s.SiteManager, s.SitePhone, s.IsActive, s.IsMainSite, s.Notes, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return wrapErr("insert client site", err)
	}
	return nil
}

func (r *ClientProfileRepo) GetSite(ctx context.Context, id string) (*entity.ClientSite, error) {
	s, err := scanSite(r.q.QueryRow(ctx, `SELECT `+siteColumns+` FROM client_sites WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get client site", err)
	}
	return s, nil
}

func (r *ClientProfileRepo) UpdateSite(ctx context.Context, s *entity.ClientSite) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE client_sites SET site_name = $2, site_code = $3, address = $4, city = $5, province = $6,
			gps_coordinates = $7, site_manager = $8, site_phone = $9, is_active = $10, is_main_site = $11,
			notes = $12, updated_at = $13
		WHERE id = $1`,
		s.ID, s.SiteName, s.SiteCode, s.Address, s.City, s.Province, s.GPSCoordinates, s.SiteManager,
		s.SitePhone, s.IsActive, s.IsMainSite, s.Notes, s.UpdatedAt)
	return expectOne("update client site", tag, err)
}

func (r *ClientProfileRepo) ListSites(ctx context.Context, clientID string) ([]*entity.ClientSite, error) {
	rows, err := r.q.Query(ctx, `SELECT `+siteColumns+` FROM client_sites
		WHERE client_id = $1 ORDER BY is_main_site DESC, site_name`, clientID)
	if err != nil {
		return nil, wrapErr("list client sites", err)
	}
	out, err := collect(rows, scanSite)
	if err != nil {
		return nil, wrapErr("scan client sites", err)
	}
	return out, nil
}

func (r *ClientProfileRepo) ClearMainSite(ctx context.Context, clientID string) error {
	_, err := r.q.Exec(ctx, `UPDATE client_sites SET is_main_site = false WHERE client_id = $1 AND is_main_site`, clientID)
	if err != nil {
		return wrapErr("clear main site", err)
	}
	return nil
}

func scanClientNote(row rowScanner) (*entity.ClientNote, error) {
	var n entity.ClientNote
	err := row.Scan(&n.ID, &n.ClientID, &n.NoteType, &n.Subject, &n.Content, &n.Priority, &n.FollowUpDate,
		&n.IsResolved, &n.ResolvedAt, &n.ResolvedBy, &n.ResolutionNotes, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *ClientProfileRepo) CreateNote(ctx context.Context, n *entity.ClientNote) error {
	_, err := r.q.Exec(ctx, `INSERT INTO client_notes (`+clientNoteColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		n.ID, n.ClientID, n.NoteType, n.Subject, n.Content, n.Priority, n.FollowUpDate, n.IsResolved,
		n.ResolvedAt, n.ResolvedBy, n.ResolutionNotes, n.CreatedBy, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return wrapErr("insert client note", err)
	}
	return nil
}

func (r *ClientProfileRepo) GetNote(ctx context.Context, id string) (*entity.ClientNote, error) {
	n, err := scanClientNote(r.q.QueryRow(ctx, `SELECT `+clientNoteColumns+` FROM client_notes WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get client note", err)
	}
	return n, nil
}

func (r *ClientProfileRepo) UpdateNote(ctx context.Context, n *entity.ClientNote) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE client_notes SET priority = $2, follow_up_date = $3, is_resolved = $4, resolved_at = $5,
			resolved_by = $6, resolution_notes = $7, updated_at = $8
		WHERE id = $1`,
		n.ID, n.Priority, n.FollowUpDate, n.IsResolved, n.ResolvedAt, n.ResolvedBy, n.ResolutionNotes, n.UpdatedAt)
	return expectOne("update client note", tag, err)
}

func (r *ClientProfileRepo) ListNotes(ctx context.Context, clientID string, openOnly bool) ([]*entity.ClientNote, error) {
	query := `SELECT ` + clientNoteColumns + ` FROM client_notes WHERE client_id = $1`
	if openOnly {
		query += ` AND NOT is_resolved`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY created_at DESC`, clientID)
	if err != nil {
		return nil, wrapErr("list client notes", err)
	}
	out, err := collect(rows, scanClientNote)
	if err != nil {
		return nil, wrapErr("scan client notes", err)
	}
	return out, nil
}

func scanRating(row rowScanner) (*entity.ClientRating, error) {
	var rt entity.ClientRating
	err := row.Scan(&rt.ID, &rt.ClientID, &rt.RatingDate, &rt.PaymentTimeliness, &rt.Communication,
		&rt.Cooperation, &rt.VolumeOfBusiness, &rt.Profitability, &rt.OverallScore, &rt.Category,
		&rt.Comments, &rt.RatedBy, &rt.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// CreateRating rating_date es DATE; el UNIQUE (client_id, rating_date) rechaza la segunda del día.
func (r *ClientProfileRepo) CreateRating(ctx context.Context, rt *entity.ClientRating) error {
	_, err := r.q.Exec(ctx, `INSERT INTO client_ratings (`+ratingColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		rt.ID, rt.ClientID, rt.RatingDate, rt.PaymentTimeliness, rt.Communication, rt.Cooperation,
		rt.VolumeOfBusiness, rt.Profitability, rt.OverallScore, rt.Category, rt.Comments, rt.RatedBy, rt.CreatedAt)
	if err != nil {
		return wrapErr("insert client rating", err)
	}
	return nil
}

func (r *ClientProfileRepo) ListRatings(ctx context.Context, clientID string) ([]*entity.ClientRating, error) {
	rows, err := r.q.Query(ctx, `SELECT `+ratingColumns+` FROM client_ratings
		WHERE client_id = $1 ORDER BY rating_date DESC`, clientID)
	if err != nil {
		return nil, wrapErr("list client ratings", err)
	}
	out, err := collect(rows, scanRating)
	if err != nil {
		return nil, wrapErr("scan client ratings", err)
	}
	return out, nil
}
