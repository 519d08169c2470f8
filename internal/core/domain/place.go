package domain

import (
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Location is a WGS84 coordinate in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is a discoverable point of interest.
type Place struct {
	ID             string
	Name           string
	NormalizedName string
	Description    string
	Categories     []Category
	Location       *Location // nil for legacy records without coordinates
	Images         []string
	IsFree         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasAnyCategory reports whether the place belongs to at least one of set.
func (p *Place) HasAnyCategory(set []Category) bool {
	return Intersects(p.Categories, set)
}

// PlaceChanges is a partial set of place fields. Nil fields are absent.
type PlaceChanges struct {
	Name        *string
	Description *string
	Categories  []Category
	Location    *Location
	Images      []string
	IsFree      *bool
}

// IsEmpty reports whether no field is present.
func (c PlaceChanges) IsEmpty() bool {
	return c.Name == nil && c.Description == nil && c.Categories == nil &&
		c.Location == nil && c.Images == nil && c.IsFree == nil
}

// Diff drops the fields of c that already match p, leaving only real edits.
func (c PlaceChanges) Diff(p *Place) PlaceChanges {
	out := c
	if c.Name != nil && *c.Name == p.Name {
		out.Name = nil
	}
	if c.Description != nil && *c.Description == p.Description {
		out.Description = nil
	}
	if c.Categories != nil && slices.Equal(c.Categories, p.Categories) {
		out.Categories = nil
	}
	if c.Location != nil && p.Location != nil && *c.Location == *p.Location {
		out.Location = nil
	}
	if c.Images != nil && slices.Equal(c.Images, p.Images) {
		out.Images = nil
	}
	if c.IsFree != nil && *c.IsFree == p.IsFree {
		out.IsFree = nil
	}
	return out
}

// NewPlace materializes a place from a fully populated change set.
func NewPlace(c PlaceChanges, now time.Time) *Place {
	p := &Place{CreatedAt: now}
	p.Apply(c, now)
	return p
}

// Apply merges present fields of c onto p and keeps NormalizedName in sync.
func (p *Place) Apply(c PlaceChanges, now time.Time) {
	if c.Name != nil {
		p.Name = strings.TrimSpace(*c.Name)
		p.NormalizedName = NormalizePlaceName(p.Name)
	}
	if c.Description != nil {
		p.Description = *c.Description
	}
	if c.Categories != nil {
		p.Categories = append([]Category(nil), c.Categories...)
	}
	if c.Location != nil {
		loc := *c.Location
		p.Location = &loc
	}
	if c.Images != nil {
		p.Images = append([]string{}, c.Images...)
	}
	if c.IsFree != nil {
		p.IsFree = *c.IsFree
	}
	p.UpdatedAt = now
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizePlaceName folds a display name into the key used for duplicate
// detection: accents stripped, apostrophes dropped, every other non
// alphanumeric ASCII rune turned into a space, lower-cased, whitespace
// collapsed.
func NormalizePlaceName(name string) string {
	folded, _, err := transform.String(accentStripper, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r == '\'' || r == '’' || r == '´' || r == '`':
		case r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
