package election

import (
	"context"

	"github.com/openballot/electionbot/src/ledger"
)

// Reader fetches the full decoded history of one topic.
type Reader interface {
	TopicMessages(ctx context.Context, topicID string) ([]ledger.Event, error)
}

// Topics names the three read-side logs.
type Topics struct {
	Created        string
	Ended          string
	CandidateAdded string
}

// Summary is the list form of an election as served over HTTP.
type Summary struct {
	ID         string `json:"electionId"`
	Name       string `json:"electionName,omitempty"`
	Ended      bool   `json:"ended"`
	WinnerName string `json:"winnerName,omitempty"`
}

// Service combines topic reads with the pure views. It holds no state
// between calls; every operation re-fetches the logs it needs, so two calls
// may observe different snapshots of the ledger.
type Service struct {
	reader Reader
	topics Topics
}

func NewService(reader Reader, topics Topics) *Service {
	return &Service{reader: reader, topics: topics}
}

// Ongoing lists created elections with no ended record.
func (s *Service) Ongoing(ctx context.Context) ([]ledger.Event, error) {
	created, err := s.reader.TopicMessages(ctx, s.topics.Created)
	if err != nil {
		return nil, err
	}
	ended, err := s.reader.TopicMessages(ctx, s.topics.Ended)
	if err != nil {
		return nil, err
	}
	return Ongoing(created, ended), nil
}

// Past lists every ended election, unfiltered, in log order.
func (s *Service) Past(ctx context.Context) ([]ledger.Event, error) {
	return s.reader.TopicMessages(ctx, s.topics.Ended)
}

// Summaries lists every created election with its ended flag.
func (s *Service) Summaries(ctx context.Context) ([]Summary, error) {
	created, err := s.reader.TopicMessages(ctx, s.topics.Created)
	if err != nil {
		return nil, err
	}
	ended, err := s.reader.TopicMessages(ctx, s.topics.Ended)
	if err != nil {
		return nil, err
	}

	endedIDs := endedIDSet(ended)
	summaries := make([]Summary, 0, len(created))
	for _, ev := range created {
		_, isEnded := endedIDs[ev.ElectionID]
		summaries = append(summaries, Summary{
			ID:    ev.ElectionID,
			Name:  ev.ElectionName,
			Ended: isEnded,
		})
	}
	return summaries, nil
}

// Detail resolves one election. The three fetches are independent, not a
// point-in-time snapshot across the logs.
func (s *Service) Detail(ctx context.Context, electionID string) (Detail, error) {
	created, err := s.reader.TopicMessages(ctx, s.topics.Created)
	if err != nil {
		return Detail{}, err
	}
	ended, err := s.reader.TopicMessages(ctx, s.topics.Ended)
	if err != nil {
		return Detail{}, err
	}
	candidates, err := s.reader.TopicMessages(ctx, s.topics.CandidateAdded)
	if err != nil {
		return Detail{}, err
	}
	return BuildDetail(electionID, created, ended, candidates)
}

// Candidates lists the roster of one election.
func (s *Service) Candidates(ctx context.Context, electionID string) ([]Candidate, error) {
	events, err := s.reader.TopicMessages(ctx, s.topics.CandidateAdded)
	if err != nil {
		return nil, err
	}
	return Candidates(electionID, events), nil
}
