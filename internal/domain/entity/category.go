package entity

import "time"

// Category agrupa materiales (andamios, encofrados, accesorios...).
type Category struct {
	ID          string
	Name        string // único
	Description string
	CreatedAt   time.Time
}
