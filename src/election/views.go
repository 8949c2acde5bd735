package election

import (
	"errors"
	"fmt"

	"github.com/openballot/electionbot/src/ledger"
)

// ErrNotFound marks a lookup for an election id with no created record. It
// is an expected outcome, not a system fault.
var ErrNotFound = errors.New("election not found")

// Candidate is one roster entry as consumed by the views. DisplayName is
// already sanitized for presentation.
type Candidate struct {
	ID          string `json:"candidateId"`
	DisplayName string `json:"name"`
	Email       string `json:"email,omitempty"`
}

// Detail is the full view of one election.
type Detail struct {
	Election   ledger.Event
	Ended      bool
	WinnerName string
	Candidates []Candidate
}

// Ongoing returns the created elections with no corresponding ended record,
// preserving the created log's order. The exclusion test is set membership;
// the two logs are fetched independently and either may be large.
func Ongoing(created, ended []ledger.Event) []ledger.Event {
	endedIDs := endedIDSet(ended)
	ongoing := make([]ledger.Event, 0, len(created))
	for _, ev := range created {
		if _, ok := endedIDs[ev.ElectionID]; !ok {
			ongoing = append(ongoing, ev)
		}
	}
	return ongoing
}

// Candidates returns the roster for an election: every candidateAdded event
// with a matching id, in log order, with display names sanitized.
func Candidates(electionID string, events []ledger.Event) []Candidate {
	roster := make([]Candidate, 0)
	for _, ev := range events {
		if ev.ElectionID != electionID {
			continue
		}
		roster = append(roster, Candidate{
			ID:          ev.CandidateID,
			DisplayName: SanitizeName(ev.CandidateName),
			Email:       ev.Email,
		})
	}
	return roster
}

// BuildDetail resolves one election from the three fetched logs. When more
// than one ended record exists for the id, the first in log order supplies
// the winner.
func BuildDetail(electionID string, created, ended, candidates []ledger.Event) (Detail, error) {
	var found *ledger.Event
	for i := range created {
		if created[i].ElectionID == electionID {
			found = &created[i]
			break
		}
	}
	if found == nil {
		return Detail{}, fmt.Errorf("election %s: %w", electionID, ErrNotFound)
	}

	endedIDs := endedIDSet(ended)
	_, isEnded := endedIDs[electionID]

	winner := ""
	if isEnded {
		for _, ev := range ended {
			if ev.ElectionID == electionID {
				winner = ev.WinnerName
				break
			}
		}
	}

	return Detail{
		Election:   *found,
		Ended:      isEnded,
		WinnerName: winner,
		Candidates: Candidates(electionID, candidates),
	}, nil
}

func endedIDSet(ended []ledger.Event) map[string]struct{} {
	ids := make(map[string]struct{}, len(ended))
	for _, ev := range ended {
		ids[ev.ElectionID] = struct{}{}
	}
	return ids
}
