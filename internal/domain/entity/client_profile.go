package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de contacto.
const (
	ContactPrimary     = "PRIMARY"
	ContactSecondary   = "SECONDARY"
	ContactAccounts    = "ACCOUNTS"
	ContactTechnical   = "TECHNICAL"
	ContactProcurement = "PROCUREMENT"
	ContactSiteManager = "SITE_MANAGER"
)

// ClientContact persona de contacto del cliente. Email único por cliente.
type ClientContact struct {
	ID          string
	ClientID    string
	Name        string
	Position    string
	ContactType string
	Email       string
	Phone       string
	Mobile      string
	Notes       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ClientSite obra o sede del cliente. Nombre único por cliente; a lo sumo una sede principal.
type ClientSite struct {
	ID             string
	ClientID       string
	SiteName       string
	SiteCode       string
	Address        string
	City           string
	Province       string
	GPSCoordinates string
	SiteManager    string
	SitePhone      string
	IsActive       bool
	IsMainSite     bool
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Tipos de nota.
const (
	NoteGeneral      = "GENERAL"
	NoteMeeting      = "MEETING"
	NotePhoneCall    = "PHONE_CALL"
	NoteEmail        = "EMAIL"
	NoteVisit        = "VISIT"
	NoteComplaint    = "COMPLAINT"
	NoteFollowUp     = "FOLLOW_UP"
	NoteCreditReview = "CREDIT_REVIEW"
)

// Prioridades de nota.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// ClientNote nota de seguimiento comercial.
type ClientNote struct {
	ID              string
	ClientID        string
	NoteType        string
	Subject         string
	Content         string
	Priority        string
	FollowUpDate    *time.Time
	IsResolved      bool
	ResolvedAt      *time.Time
	ResolvedBy      string
	ResolutionNotes string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Categorías de calificación.
const (
	RatingExcellent        = "EXCELLENT"
	RatingGood             = "GOOD"
	RatingSatisfactory     = "SATISFACTORY"
	RatingNeedsImprovement = "NEEDS_IMPROVEMENT"
	RatingPoor             = "POOR"
)

// ClientRating evaluación del cliente en una fecha. Una por cliente y día.
type ClientRating struct {
	ID                string
	ClientID          string
	RatingDate        time.Time
	PaymentTimeliness int
	Communication     int
	Cooperation       int
	VolumeOfBusiness  int
	Profitability     int
	OverallScore      decimal.Decimal
	Category          string
	Comments          string
	RatedBy           string
	CreatedAt         time.Time
}
