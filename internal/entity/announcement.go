package entity

import (
	"time"
	"unicode/utf8"
)

// DefaultColor is the highlight colour applied when the author picks none.
const DefaultColor = "#3e3e60"

// MaxDescriptionBytes caps description size for the signage screens.
const MaxDescriptionBytes = 470

// Announcement is a time-bounded message shown on the campus dashboard.
// StartDate and EndDate are kept as the raw ISO-8601 strings submitted by the
// author; they are parsed only when computing visibility, and records whose
// dates fail to parse are simply never active.
type Announcement struct {
	ID          string
	Title       string
	Description string
	StartDate   string
	EndDate     string
	Color       string
	Link        *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Announcement timestamps arrive in two flavours: full stamps with an
// explicit zone (RFC3339, the intra API's millisecond form) and the zone-less
// values the HTML datetime-local form inputs submit. The zone-less ones are
// wall-clock times in the campus timezone, so they parse in the server's
// local zone rather than defaulting to UTC.
var (
	zonedDateLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
	}
	localDateLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	}
)

// ParseDate parses an announcement timestamp, trying each accepted layout.
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range zonedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	for _, layout := range localDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsActive reports whether now falls inside the announcement's window,
// i.e. start <= now < end. Unparseable or missing dates make the
// announcement inactive rather than erroring.
func (a *Announcement) IsActive(now time.Time) bool {
	start, ok := ParseDate(a.StartDate)
	if !ok {
		return false
	}
	end, ok := ParseDate(a.EndDate)
	if !ok {
		return false
	}
	return !now.Before(start) && now.Before(end)
}

// TruncateDescription clamps s to MaxDescriptionBytes of UTF-8. The cut never
// splits a multi-byte code point: trailing bytes of a partial rune are
// dropped, so the result may be shorter than the limit but stays valid UTF-8.
func TruncateDescription(s string) string {
	if len(s) <= MaxDescriptionBytes {
		return s
	}
	cut := MaxDescriptionBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
