// Package render substitutes card fields into the master e-card
// template. Tokens look like {{FULLNAME}}; every known token is
// replaced, missing fields degrade to the empty string, and all
// values are HTML-escaped on the way in.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/nexcard/ecard-services/internal/cardsvc/models"
)

// lineBreaks rewrites newlines in free text as markup line breaks.
var lineBreaks = strings.NewReplacer("\r\n", "<br />", "\n", "<br />")

// scalarTokens maps every scalar placeholder to its card field.
// Sequence fields (services, testimonials) are deliberately not here;
// they render through dedicated fragment builders so an array can
// never leak into the page as its literal serialization.
func scalarTokens(c *models.Card) map[string]string {
	return map[string]string{
		"FULLNAME":     c.FullName,
		"DESIGNATION":  c.Designation,
		"COMPANY":      c.Company,
		"TAGLINE":      c.Tagline,
		"PHONE":        c.Phone,
		"EMAIL":        c.Email,
		"WEBSITE":      c.Website,
		"ADDRESS":      c.Address,
		"WHATSAPP":     c.Whatsapp,
		"INSTAGRAM":    c.Instagram,
		"LINKEDIN":     c.Linkedin,
		"TWITTER":      c.Twitter,
		"SLUG":         c.Slug,
		"SHAREMESSAGE": c.ShareMessage,
	}
}

func servicesFragment(services models.ServiceList) string {
	var b strings.Builder
	for _, s := range services {
		fmt.Fprintf(&b, "<div class=\"service\"><h4>%s</h4><p>%s</p></div>",
			html.EscapeString(s.Title), html.EscapeString(s.Description))
	}
	return b.String()
}

func testimonialsFragment(testimonials models.TestimonialList) string {
	var b strings.Builder
	for _, t := range testimonials {
		fmt.Fprintf(&b, "<div class=\"service\"><h4>%s</h4><p>%s</p></div>",
			html.EscapeString(t.Name), html.EscapeString(t.Message))
	}
	return b.String()
}

// resolve expands one token name, reporting whether it is known.
func resolve(card *models.Card, scalars map[string]string, name string) (string, bool) {
	switch name {
	case "ABOUT":
		// About keeps its line structure: escape first, then turn
		// the newlines into <br /> markup.
		return lineBreaks.Replace(html.EscapeString(card.About)), true
	case "SERVICES":
		return servicesFragment(card.Services), true
	case "TESTIMONIALS":
		return testimonialsFragment(card.Testimonials), true
	}
	if v, ok := scalars[name]; ok {
		return html.EscapeString(v), true
	}
	return "", false
}

// Card renders the template for the given card. A named card with no
// slug gets one derived from its name, set in place so the rendered
// page and any later persistence agree on it; unnamed cards keep an
// empty slug.
//
// The template is scanned once, left to right; substituted values are
// never re-scanned, so a field value that itself contains {{TOKEN}}
// text ends up on the page literally instead of being expanded.
// Unknown tokens are left as written.
func Card(card *models.Card, template string) string {
	if card.Slug == "" && card.FullName != "" {
		card.Slug = models.Slugify(card.FullName)
	}

	scalars := scalarTokens(card)

	var b strings.Builder
	rest := template
	for {
		i := strings.Index(rest, "{{")
		if i < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[i+2:], "}}")
		if end < 0 {
			b.WriteString(rest)
			break
		}

		b.WriteString(rest[:i])
		name := rest[i+2 : i+2+end]
		if value, ok := resolve(card, scalars, name); ok {
			b.WriteString(value)
		} else {
			b.WriteString(rest[i : i+2+end+2])
		}
		rest = rest[i+2+end+2:]
	}

	return b.String()
}
