package schedule

import (
	"strings"

	"github.com/classdeck/classdeck-api/internal/models"
)

// Lunch assignment: 117, the 200/700/800/900 halls, West Campus, the Gym and
// the Weight Room eat first; everyone else eats second.
func LunchTierForRoom(room string) models.LunchTier {
	r := strings.ToLower(strings.TrimSpace(room))
	if r == "" {
		return models.LunchTier{Tier: 2, Recognized: false}
	}

	first := r == "117" ||
		strings.Contains(r, "west") ||
		strings.Contains(r, "gym") ||
		strings.Contains(r, "weight")
	if !first {
		switch r[0] {
		case '2', '7', '8', '9':
			first = true
		}
	}

	tier := 2
	if first {
		tier = 1
	}
	return models.LunchTier{Tier: tier, Recognized: true}
}
