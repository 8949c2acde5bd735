package ledger

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// EventType discriminates the record kinds carried on the election topics.
type EventType string

const (
	EventElectionCreated EventType = "electionCreated"
	EventElectionEnded   EventType = "electionEnded"
	EventCandidateAdded  EventType = "candidateAdded"
	EventVoted           EventType = "voted"
)

// Event is one typed record appended to a topic. Type selects which of the
// variant fields carry meaning; the rest stay at their zero value.
// TxnHash and ContractID are always null at emission time and are filled by
// the downstream confirmation process.
type Event struct {
	Type       EventType `json:"type"`
	ElectionID string    `json:"electionId"`
	Timestamp  int64     `json:"timestamp"`
	Origin     string    `json:"origin,omitempty"`
	TxnHash    *string   `json:"txnHash"`
	ContractID *string   `json:"contractId"`

	// electionCreated
	ElectionName string `json:"electionName,omitempty"`
	// electionEnded
	WinnerName string `json:"winnerName,omitempty"`
	// candidateAdded / voted
	CandidateID   string `json:"candidateId,omitempty"`
	CandidateName string `json:"candidateName,omitempty"`
	VoterID       string `json:"voterId,omitempty"`
	Email         string `json:"email,omitempty"`
}

// NewVote builds a voted event ready for submission.
func NewVote(electionID, candidateID, voterID, email, origin string, timestamp int64) Event {
	return Event{
		Type:        EventVoted,
		ElectionID:  electionID,
		CandidateID: candidateID,
		VoterID:     voterID,
		Email:       email,
		Origin:      origin,
		Timestamp:   timestamp,
	}
}

// NewCandidateRegistration builds a candidateAdded event ready for submission.
func NewCandidateRegistration(electionID, candidateID, candidateName, email, origin string, timestamp int64) Event {
	return Event{
		Type:          EventCandidateAdded,
		ElectionID:    electionID,
		CandidateID:   candidateID,
		CandidateName: candidateName,
		Email:         email,
		Origin:        origin,
		Timestamp:     timestamp,
	}
}

// DecodeError reports a payload that is not valid base64 or not valid JSON.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ledger: decode: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("ledger: decode: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SchemaError reports a well-formed payload that violates the event schema.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("ledger: schema: %s: %s", e.Field, e.Reason)
}

// Decode reverses the transport encoding of a raw topic message: base64 to a
// UTF-8 JSON document, then into a typed Event. Unknown type discriminants
// fail closed; variant payload fields beyond electionId are accepted
// permissively since the upstream writers never validated them.
func Decode(raw string) (Event, error) {
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return Event{}, &DecodeError{Reason: "invalid base64 payload", Err: err}
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, &DecodeError{Reason: "invalid JSON payload", Err: err}
	}

	switch ev.Type {
	case EventElectionCreated, EventElectionEnded, EventCandidateAdded, EventVoted:
	case "":
		return Event{}, &SchemaError{Field: "type", Reason: "missing"}
	default:
		return Event{}, &SchemaError{Field: "type", Reason: fmt.Sprintf("unknown value %q", ev.Type)}
	}

	if ev.ElectionID == "" {
		return Event{}, &SchemaError{Field: "electionId", Reason: "missing"}
	}

	return ev, nil
}

// Encode produces the transport form of an event: base64 over its JSON
// document. Decode(Encode(ev)) round-trips.
func Encode(ev Event) (string, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("ledger: encode: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
