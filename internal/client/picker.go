package client

import (
	"math/rand"

	"github.com/uripeled2/classroom-participation-app/internal/model"
)

// Candidates returns the students eligible for selection: hands raised,
// minus excludeID (pass the current selection for a "next student" pick,
// or "" for a first pick).
func Candidates(students []model.Student, excludeID string) []model.Student {
	out := make([]model.Student, 0, len(students))
	for _, s := range students {
		if s.HasRaisedHand && s.ID != excludeID {
			out = append(out, s)
		}
	}
	return out
}

// Pick chooses uniformly at random among the candidates. An empty
// candidate set reports false; the caller surfaces that locally and sends
// nothing to the authority.
func Pick(students []model.Student, excludeID string, rng *rand.Rand) (string, bool) {
	candidates := Candidates(students, excludeID)
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[rng.Intn(len(candidates))].ID, true
}
