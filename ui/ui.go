// Package ui holds the presentation helpers every page shares: avatar initials,
// status badges, attendance bands and generated ids.
package ui

import (
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Initials returns the upper-cased first letters of the first two words of name
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Split(name, " ") {
		if word == "" {
			continue
		}
		r := []rune(word)[0]
		b.WriteRune(unicode.ToUpper(r))
		n++
		if n == 2 {
			break
		}
	}
	return b.String()
}

// Badge styles a status pill
type Badge struct {
	Label string `json:"label"`
	Class string `json:"class"`
	Dot   string `json:"dot"` // online / away / offline
}

// StatusBadge maps a record status onto its pill style
func StatusBadge(status string) Badge {
	switch status {
	case "Active":
		return Badge{Label: status, Class: "text-teal-600 bg-teal-50", Dot: "online"}
	case "On Leave":
		return Badge{Label: status, Class: "text-yellow-600 bg-yellow-50", Dot: "away"}
	default:
		return Badge{Label: status, Class: "text-red-500 bg-red-50", Dot: "offline"}
	}
}

// Attendance progress-bar colors
const (
	BandLow    = "bg-red-500"
	BandMedium = "bg-yellow-400"
	BandHigh   = "bg-teal-600"
)

// ProgressBand picks the bar color for an attendance percentage
func ProgressBand(pct float64) string {
	switch {
	case pct < 75:
		return BandLow
	case pct < 85:
		return BandMedium
	default:
		return BandHigh
	}
}

// NewID returns prefix followed by a short random suffix
func NewID(prefix string) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + s[:12]
}

var avatarPalette = []string{"0D9488", "4F46E5", "DB2777", "EA580C", "9333EA", "2563EB"}

// AvatarColor picks a stable background color for name
func AvatarColor(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return avatarPalette[h.Sum32()%uint32(len(avatarPalette))]
}
