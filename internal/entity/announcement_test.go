package entity

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateDescription_ShortStringUntouched(t *testing.T) {
	assert.Equal(t, "ciao", TruncateDescription("ciao"))
}

func TestTruncateDescription_ASCIIExactly470(t *testing.T) {
	long := strings.Repeat("a", 500)
	got := TruncateDescription(long)
	assert.Len(t, got, MaxDescriptionBytes)
}

func TestTruncateDescription_DoesNotSplitMultibyteRune(t *testing.T) {
	// "è" is 2 bytes in UTF-8; 469 ASCII bytes followed by "è" puts the cut
	// point in the middle of the rune.
	s := strings.Repeat("a", 469) + "èè"
	got := TruncateDescription(s)
	assert.Less(t, len(got), MaxDescriptionBytes)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 469), got)
}

func TestTruncateDescription_KeepsRuneEndingAtLimit(t *testing.T) {
	// 468 ASCII bytes + one 2-byte rune is exactly 470 bytes.
	s := strings.Repeat("a", 468) + "è" + strings.Repeat("b", 50)
	got := TruncateDescription(s)
	assert.Len(t, got, MaxDescriptionBytes)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "è"))
}

func TestParseDate_AcceptedLayouts(t *testing.T) {
	for _, value := range []string{
		"2024-05-10T09:00",
		"2024-05-10T09:00:00",
		"2024-05-10T09:00:00.000Z",
		"2024-05-10T09:00:00Z",
	} {
		_, ok := ParseDate(value)
		assert.True(t, ok, "expected %q to parse", value)
	}
}

func TestParseDate_ZoneLessValuesAreLocalWallClock(t *testing.T) {
	restore := time.Local
	time.Local = time.FixedZone("UTC+2", 2*60*60)
	defer func() { time.Local = restore }()

	parsed, ok := ParseDate("2024-07-10T12:00")
	require.True(t, ok)
	_, offset := parsed.Zone()
	assert.Equal(t, 2*60*60, offset)

	// An explicit zone always wins over the server zone.
	parsed, ok = ParseDate("2024-07-10T12:00:00Z")
	require.True(t, ok)
	_, offset = parsed.Zone()
	assert.Equal(t, 0, offset)
}

func TestIsActive_LocalWindowOnNonUTCServer(t *testing.T) {
	restore := time.Local
	time.Local = time.FixedZone("UTC+2", 2*60*60)
	defer func() { time.Local = restore }()

	// A window entered as 12:00-13:00 wall-clock time must be active at
	// 12:30 wall-clock time, whatever the server's UTC offset is.
	a := &Announcement{StartDate: "2024-07-10T12:00", EndDate: "2024-07-10T13:00"}
	assert.True(t, a.IsActive(time.Date(2024, 7, 10, 12, 30, 0, 0, time.Local)))
	assert.False(t, a.IsActive(time.Date(2024, 7, 10, 12, 30, 0, 0, time.UTC)))
}

func TestParseDate_Rejected(t *testing.T) {
	for _, value := range []string{"", "tomorrow", "10/05/2024"} {
		_, ok := ParseDate(value)
		assert.False(t, ok, "expected %q to be rejected", value)
	}
}

func TestIsActive(t *testing.T) {
	// Zone-less window dates resolve in the server zone, so now has to too.
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.Local)

	cases := []struct {
		name   string
		start  string
		end    string
		active bool
	}{
		{"inside window", "2024-05-10T11:00", "2024-05-10T13:00", true},
		{"starts exactly now", "2024-05-10T12:00", "2024-05-10T13:00", true},
		{"ends exactly now", "2024-05-10T11:00", "2024-05-10T12:00", false},
		{"already over", "2024-05-09T11:00", "2024-05-09T13:00", false},
		{"not started", "2024-05-10T13:00", "2024-05-10T14:00", false},
		{"bad start", "soon", "2024-05-10T13:00", false},
		{"bad end", "2024-05-10T11:00", "later", false},
		{"missing dates", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &Announcement{StartDate: tc.start, EndDate: tc.end}
			assert.Equal(t, tc.active, a.IsActive(now))
		})
	}
}

func TestIdentity(t *testing.T) {
	var nobody *Identity
	assert.False(t, nobody.IsAdmin())
	assert.Equal(t, "unknown", nobody.DisplayLogin())

	admin := &Identity{Login: "boss", Kind: KindAdmin}
	require.True(t, admin.IsAdmin())
	assert.Equal(t, "boss", admin.DisplayLogin())

	anonymous := &Identity{Kind: "student"}
	assert.Equal(t, "unknown", anonymous.DisplayLogin())
}
