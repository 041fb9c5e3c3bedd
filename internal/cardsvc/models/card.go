package models

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"
)

// Service is a single offering listed on a card.
type Service struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Testimonial is a single quote listed on a card.
type Testimonial struct {
	Name    string `json:"name"`
	Message string `json:"message,omitempty"`
}

// ServiceList tolerates malformed input: anything that is not a JSON
// array decodes to an empty list instead of failing the whole card.
type ServiceList []Service

func (l *ServiceList) UnmarshalJSON(data []byte) error {
	var items []Service
	if err := json.Unmarshal(data, &items); err != nil {
		*l = ServiceList{}
		return nil
	}
	if items == nil {
		items = []Service{}
	}
	*l = ServiceList(items)
	return nil
}

// TestimonialList has the same coercion rule as ServiceList.
type TestimonialList []Testimonial

func (l *TestimonialList) UnmarshalJSON(data []byte) error {
	var items []Testimonial
	if err := json.Unmarshal(data, &items); err != nil {
		*l = TestimonialList{}
		return nil
	}
	if items == nil {
		items = []Testimonial{}
	}
	*l = TestimonialList(items)
	return nil
}

// Card represents one e-card record in an admin's record set.
type Card struct {
	ID           string          `json:"id"`
	FullName     string          `json:"fullName"`
	Designation  string          `json:"designation,omitempty"`
	Company      string          `json:"company,omitempty"`
	Tagline      string          `json:"tagline,omitempty"`
	About        string          `json:"about,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Email        string          `json:"email,omitempty"`
	Website      string          `json:"website,omitempty"`
	Address      string          `json:"address,omitempty"`
	Whatsapp     string          `json:"whatsapp,omitempty"`
	Instagram    string          `json:"instagram,omitempty"`
	Linkedin     string          `json:"linkedin,omitempty"`
	Twitter      string          `json:"twitter,omitempty"`
	Slug         string          `json:"slug,omitempty"`
	ShareMessage string          `json:"shareMessage,omitempty"`
	Services     ServiceList     `json:"services"`
	Testimonials TestimonialList `json:"testimonials"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// DisplayName is the name used for slugs, export filenames and the vcard.
func (c *Card) DisplayName() string {
	if c.FullName != "" {
		return c.FullName
	}
	return "ecard"
}

// Slugify normalizes a display name for public lookup: lower case,
// every non-alphanumeric rune dropped.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
