package availability

import (
	"testing"

	"classdesk/pkg/models"
)

func TestClassifyFull(t *testing.T) {
	if got := Classify(10, 10); got != models.TierRed {
		t.Errorf("Classify(10, 10) = %s, want red", got)
	}
	if got := Classify(5, 7); got != models.TierRed {
		t.Errorf("over-enrolled session should be red, got %s", got)
	}
}

func TestClassifyZeroCapacity(t *testing.T) {
	// A zero-capacity session displays as full, not as available.
	if got := Classify(0, 0); got != models.TierRed {
		t.Errorf("Classify(0, 0) = %s, want red", got)
	}
}

func TestClassifyAmber(t *testing.T) {
	if got := Classify(10, 8); got != models.TierAmber {
		t.Errorf("Classify(10, 8) = %s, want amber", got)
	}
	// 4/5 = 0.8 is exactly at the threshold.
	if got := Classify(5, 4); got != models.TierAmber {
		t.Errorf("Classify(5, 4) = %s, want amber", got)
	}
}

func TestClassifyGreen(t *testing.T) {
	if got := Classify(10, 5); got != models.TierGreen {
		t.Errorf("Classify(10, 5) = %s, want green", got)
	}
	if got := Classify(10, 0); got != models.TierGreen {
		t.Errorf("Classify(10, 0) = %s, want green", got)
	}
}

func TestClassifyBoundary(t *testing.T) {
	// Just under the amber threshold stays green.
	if got := Classify(100, 79); got != models.TierGreen {
		t.Errorf("Classify(100, 79) = %s, want green", got)
	}
	if got := Classify(100, 80); got != models.TierAmber {
		t.Errorf("Classify(100, 80) = %s, want amber", got)
	}
	if got := Classify(100, 99); got != models.TierAmber {
		t.Errorf("Classify(100, 99) = %s, want amber", got)
	}
}

func TestForSessionTrustsBackendColor(t *testing.T) {
	s := models.Session{Capacity: 10, Enrolled: 5, AvailabilityColor: "amber"}
	if got := ForSession(s); got != models.TierAmber {
		t.Errorf("ForSession should prefer the supplied color, got %s", got)
	}
}

func TestForSessionFallsBackOnUnknownColor(t *testing.T) {
	s := models.Session{Capacity: 10, Enrolled: 10, AvailabilityColor: "purple"}
	if got := ForSession(s); got != models.TierRed {
		t.Errorf("ForSession with unknown color = %s, want red", got)
	}

	s = models.Session{Capacity: 10, Enrolled: 5}
	if got := ForSession(s); got != models.TierGreen {
		t.Errorf("ForSession with empty color = %s, want green", got)
	}
}
