package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// CreateContactRequest body para POST /api/clients/:id/contacts.
type CreateContactRequest struct {
	Name        string `json:"name"`
	Position    string `json:"position,omitempty"`
	ContactType string `json:"contact_type,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// ContactResponse contacto en respuestas.
type ContactResponse struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Name        string    `json:"name"`
	Position    string    `json:"position,omitempty"`
	ContactType string    `json:"contact_type"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Mobile      string    `json:"mobile,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToContactResponse convierte la entidad.
func ToContactResponse(c *entity.ClientContact) ContactResponse {
	return ContactResponse{
		ID:          c.ID,
		ClientID:    c.ClientID,
		Name:        c.Name,
		Position:    c.Position,
		ContactType: c.ContactType,
		Email:       c.Email,
		Phone:       c.Phone,
		Mobile:      c.Mobile,
		Notes:       c.Notes,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

// CreateSiteRequest body para POST /api/clients/:id/sites.
type CreateSiteRequest struct {
	SiteName       string `json:"site_name"`
	SiteCode       string `json:"site_code,omitempty"`
	Address        string `json:"address"`
	City           string `json:"city,omitempty"`
	Province       string `json:"province,omitempty"`
	GPSCoordinates string `json:"gps_coordinates,omitempty"`
	SiteManager    string `json:"site_manager,omitempty"`
	SitePhone      string `json:"site_phone,omitempty"`
	IsMainSite     bool   `json:"is_main_site"`
	Notes          string `json:"notes,omitempty"`
}

// SiteResponse sede en respuestas.
type SiteResponse struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"client_id"`
	SiteName       string    `json:"site_name"`
	SiteCode       string    `json:"site_code,omitempty"`
	Address        string    `json:"address"`
	City           string    `json:"city,omitempty"`
	Province       string    `json:"province,omitempty"`
	GPSCoordinates string    `json:"gps_coordinates,omitempty"`
	SiteManager    string    `json:"site_manager,omitempty"`
	SitePhone      string    `json:"site_phone,omitempty"`
	IsActive       bool      `json:"is_active"`
	IsMainSite     bool      `json:"is_main_site"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToSiteResponse convierte la entidad.
func ToSiteResponse(s *entity.ClientSite) SiteResponse {
	return SiteResponse{
		ID:             s.ID,
		ClientID:       s.ClientID,
		SiteName:       s.SiteName,
		SiteCode:       s.SiteCode,
		Address:        s.Address,
		City:           s.City,
		Province:       s.Province,
		GPSCoordinates: s.GPSCoordinates,
		SiteManager:    s.SiteManager,
		SitePhone:      s.SitePhone,
		IsActive:       s.IsActive,
		IsMainSite:     s.IsMainSite,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
	}
}

// CreateNoteRequest body para POST /api/clients/:id/notes.
type CreateNoteRequest struct {
	NoteType     string     `json:"note_type,omitempty"`
	Subject      string     `json:"subject"`
	Content      string     `json:"content"`
	Priority     string     `json:"priority,omitempty"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty"`
}

// ResolveNoteRequest body para POST /api/client-notes/:id/resolve.
type ResolveNoteRequest struct {
	ResolutionNotes string `json:"resolution_notes,omitempty"`
}

// NoteResponse nota en respuestas.
type NoteResponse struct {
	ID              string     `json:"id"`
	ClientID        string     `json:"client_id"`
	NoteType        string     `json:"note_type"`
	Subject         string     `json:"subject"`
	Content         string     `json:"content"`
	Priority        string     `json:"priority"`
	FollowUpDate    *time.Time `json:"follow_up_date,omitempty"`
	IsResolved      bool       `json:"is_resolved"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy      string     `json:"resolved_by,omitempty"`
	ResolutionNotes string     `json:"resolution_notes,omitempty"`
	CreatedBy       string     `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ToNoteResponse convierte la entidad.
func ToNoteResponse(n *entity.ClientNote) NoteResponse {
	return NoteResponse{
		ID:              n.ID,
		ClientID:        n.ClientID,
		NoteType:        n.NoteType,
		Subject:         n.Subject,
		Content:         n.Content,
		Priority:        n.Priority,
		FollowUpDate:    n.FollowUpDate,
		IsResolved:      n.IsResolved,
		ResolvedAt:      n.ResolvedAt,
		ResolvedBy:      n.ResolvedBy,
		ResolutionNotes: n.ResolutionNotes,
		CreatedBy:       n.CreatedBy,
		CreatedAt:       n.CreatedAt,
	}
}

// CreateRatingRequest body para POST /api/clients/:id/ratings. Sin fecha se usa hoy.
type CreateRatingRequest struct {
	RatingDate        *time.Time `json:"rating_date,omitempty"`
	PaymentTimeliness int        `json:"payment_timeliness"`
	Communication     int        `json:"communication"`
	Cooperation       int        `json:"cooperation"`
	VolumeOfBusiness  int        `json:"volume_of_business"`
	Profitability     int        `json:"profitability"`
	Comments          string     `json:"comments,omitempty"`
}

// RatingResponse calificación en respuestas.
type RatingResponse struct {
	ID                string          `json:"id"`
	ClientID          string          `json:"client_id"`
	RatingDate        string          `json:"rating_date"`
	PaymentTimeliness int             `json:"payment_timeliness"`
	Communication     int             `json:"communication"`
	Cooperation       int             `json:"cooperation"`
	VolumeOfBusiness  int             `json:"volume_of_business"`
	Profitability     int             `json:"profitability"`
	OverallScore      decimal.Decimal `json:"overall_score"`
	Category          string          `json:"category"`
	Comments          string          `json:"comments,omitempty"`
	RatedBy           string          `json:"rated_by"`
}

// ToRatingResponse convierte la entidad.
func ToRatingResponse(r *entity.ClientRating) RatingResponse {
	return RatingResponse{
		ID:                r.ID,
		ClientID:          r.ClientID,
		RatingDate:        r.RatingDate.Format(time.DateOnly),
		PaymentTimeliness: r.PaymentTimeliness,
		Communication:     r.Communication,
		Cooperation:       r.Cooperation,
		VolumeOfBusiness:  r.VolumeOfBusiness,
		Profitability:     r.Profitability,
		OverallScore:      r.OverallScore,
		Category:          r.Category,
		Comments:          r.Comments,
		RatedBy:           r.RatedBy,
	}
}
