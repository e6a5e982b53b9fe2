package domain

import (
	"strconv"
	"strings"
	"time"
)

const (
	TypeSale = "sale"
	TypeRent = "rent"
)

// Property mirrors a listing as the remote API returns it. Category and
// District hold names, not ids.
type Property struct {
	ID          string    `json:"id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Price       float64   `json:"price" validate:"gte=0"`
	Location    string    `json:"location"`
	District    string    `json:"district"`
	Category    string    `json:"category"`
	Type        string    `json:"type" validate:"omitempty,oneof=sale rent"`
	Bedrooms    int       `json:"bedroom"`
	Bathrooms   int       `json:"bathroom"`
	Area        Area      `json:"area"`
	Description string    `json:"description"`
	Images      []string  `json:"image"`
	IsSold      bool      `json:"isSold"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Cover is the first image or "" for listings without one.
func (p Property) Cover() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p Property) Status() string {
	if p.IsSold {
		return "Sold"
	}
	return "Available"
}

// PropertyInput is the body sent on create and update.
type PropertyInput struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Bedrooms    int      `json:"bedroom"`
	Bathrooms   int      `json:"bathroom"`
	Area        string   `json:"area"`
	Category    string   `json:"category"`
	District    string   `json:"district"`
	Images      []string `json:"images"`
	IsSold      bool     `json:"isSold"`
}

// InputFrom copies the editable fields of p.
func InputFrom(p Property) PropertyInput {
	return PropertyInput{
		Title:       p.Title,
		Price:       p.Price,
		Location:    p.Location,
		Description: p.Description,
		Type:        p.Type,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Area:        string(p.Area),
		Category:    p.Category,
		District:    p.District,
		Images:      append([]string(nil), p.Images...),
		IsSold:      p.IsSold,
	}
}

// Area arrives either as a JSON string or a number; it is kept as text.
type Area string

func (a *Area) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*a = ""
		return nil
	}
	if uq, err := strconv.Unquote(s); err == nil {
		*a = Area(uq)
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return err
	}
	*a = Area(s)
	return nil
}

// PropertyStat is the slim listing row returned by the property count
// endpoint.
type PropertyStat struct {
	ID        string    `json:"id"`
	IsSold    bool      `json:"isSold"`
	CreatedAt time.Time `json:"createdAt"`
}

type Category struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

type District struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// TaxonomyCount is one row of the per-category or per-district counts.
type TaxonomyCount struct {
	Name  string `json:"name" validate:"required"`
	Count struct {
		Posts int `json:"posts"`
	} `json:"_count"`
}

type Commission struct {
	ID        string    `json:"id" validate:"required"`
	PostID    string    `json:"postId" validate:"required"`
	Amount    int64     `json:"amount" validate:"gte=0"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommissionInput struct {
	PostID string `json:"postId"`
	Amount int64  `json:"amount"`
	Notes  string `json:"notes,omitempty"`
}

// User is an end-customer account, not an admin.
type User struct {
	ID         string     `json:"id" validate:"required"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	Phone      string     `json:"phoneNumber"`
	CreatedAt  time.Time  `json:"createdAt"`
	Image      string     `json:"image,omitempty"`
	LastActive *time.Time `json:"lastActive,omitempty"`
}

// Principal is the signed-in admin as decoded from the bearer token.
type Principal struct {
	ID        string
	Name      string
	Email     string
	Avatar    string
	ExpiresAt time.Time
}
