package submit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openballot/electionbot/src/data"
	"github.com/openballot/electionbot/src/ledger"
)

const defaultOrigin = "discord"

// Writer builds voted and candidateAdded events and submits them for append.
// The append is awaited; a write failure is returned to the caller rather
// than logged and swallowed.
type Writer struct {
	appender       Appender
	rdb            *redis.Client
	votedTopic     string
	candidateTopic string
	origin         string
	now            func() int64
}

type WriterConfig struct {
	Appender              Appender
	Redis                 *redis.Client // optional; nil disables fan-out
	VotedTopicID          string
	CandidateAddedTopicID string
	Origin                string
	Now                   func() int64
}

func NewWriter(cfg WriterConfig) *Writer {
	w := &Writer{
		appender:       cfg.Appender,
		rdb:            cfg.Redis,
		votedTopic:     cfg.VotedTopicID,
		candidateTopic: cfg.CandidateAddedTopicID,
		origin:         cfg.Origin,
		now:            cfg.Now,
	}
	if w.origin == "" {
		w.origin = defaultOrigin
	}
	if w.now == nil {
		w.now = func() int64 { return time.Now().Unix() }
	}
	return w
}

// CastVote appends one voted event to the voted topic.
func (w *Writer) CastVote(ctx context.Context, electionID, candidateID, voterID, email string) error {
	ev := ledger.NewVote(electionID, candidateID, voterID, email, w.origin, w.now())
	if err := w.appender.AppendMessage(ctx, w.votedTopic, ev); err != nil {
		return fmt.Errorf("cast vote: %w", err)
	}
	w.announce(ctx, ev)
	return nil
}

// RegisterCandidate appends one candidateAdded event to the candidate topic.
func (w *Writer) RegisterCandidate(ctx context.Context, electionID, candidateID, candidateName, email string) error {
	ev := ledger.NewCandidateRegistration(electionID, candidateID, candidateName, email, w.origin, w.now())
	if err := w.appender.AppendMessage(ctx, w.candidateTopic, ev); err != nil {
		return fmt.Errorf("register candidate: %w", err)
	}
	w.announce(ctx, ev)
	return nil
}

// announce fans the accepted event out to the confirmation stream. Fan-out
// is best effort; the ledger append already succeeded.
func (w *Writer) announce(ctx context.Context, ev ledger.Event) {
	if w.rdb == nil {
		return
	}
	if err := data.PublishEvent(ctx, w.rdb, ev); err != nil {
		log.Printf("submit: publish %s event for election %s: %v", ev.Type, ev.ElectionID, err)
	}
}
