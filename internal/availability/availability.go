// Package availability classifies how full a session is. It is the single
// authority for tier display wherever the backend does not supply one.
package availability

import "classdesk/pkg/models"

// AmberThreshold is the fraction of capacity at which a session with spots
// left still displays as nearly full.
const AmberThreshold = 0.8

// Classify maps capacity and enrolled counts to a tier.
//
// A session with no remaining spots is red, which also covers zero-capacity
// sessions. A session at or past 80% of capacity is amber. Everything else
// is green. Deterministic and side-effect free.
func Classify(capacity, enrolled int) models.Tier {
	if capacity-enrolled <= 0 {
		return models.TierRed
	}
	if float64(enrolled)/float64(capacity) >= AmberThreshold {
		return models.TierAmber
	}
	return models.TierGreen
}

// ForSession returns the backend-supplied color when it is a known tier,
// falling back to Classify otherwise.
func ForSession(s models.Session) models.Tier {
	switch models.Tier(s.AvailabilityColor) {
	case models.TierGreen, models.TierAmber, models.TierRed:
		return models.Tier(s.AvailabilityColor)
	}
	return Classify(s.Capacity, s.Enrolled)
}
