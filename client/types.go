package client

import (
	"io"
	"time"
)

// ProductStatus enumerates the lifecycle states of a product listing.
type ProductStatus string

const (
	StatusAvailable ProductStatus = "available"
	StatusSold      ProductStatus = "sold"
	StatusCancelled ProductStatus = "cancelled"
)

// Valid reports whether s is one of the statuses the backend accepts.
func (s ProductStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
// A sold or cancelled product never changes status again; cancellation is the
// deactivation path, products are never deleted.
func (s ProductStatus) IsTerminal() bool {
	return s == StatusSold || s == StatusCancelled
}

// Attachment is an uploaded file reference. Immutable once created.
type Attachment struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Category is read-only reference data.
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Seller is the owning seller summary embedded in products and returned by
// the profile read.
type Seller struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Phone  string      `json:"phone"`
	Email  string      `json:"email"`
	Avatar *Attachment `json:"avatar"`
}

// Product is a seller's listing. Price is in minor currency units.
type Product struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	PriceInCents int64         `json:"priceInCents"`
	Status       ProductStatus `json:"status"`
	Owner        Seller        `json:"owner"`
	Category     Category      `json:"category"`
	Attachments  []Attachment  `json:"attachments"`
}

// DayViews is one point of the views-per-day metric series.
type DayViews struct {
	Date   time.Time `json:"date"`
	Amount int64     `json:"amount"`
}

// File is a file selected for upload.
type File struct {
	Name    string
	Content io.Reader
}
