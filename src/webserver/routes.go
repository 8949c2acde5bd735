package webserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openballot/electionbot/src/election"
	"github.com/openballot/electionbot/src/ledger"
	"github.com/openballot/electionbot/src/logging"
)

func attachRoutes(g *gin.Engine, svc *election.Service) {
	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := g.Group("/v1")
	v1.GET("/elections", handleListElections(svc))
	v1.GET("/elections/:id", handleElectionDetail(svc))
	v1.GET("/elections/:id/candidates", handleElectionCandidates(svc))
}

type detailResponse struct {
	ElectionID   string               `json:"electionId"`
	ElectionName string               `json:"electionName,omitempty"`
	Timestamp    int64                `json:"timestamp"`
	Ended        bool                 `json:"ended"`
	WinnerName   string               `json:"winnerName,omitempty"`
	Candidates   []election.Candidate `json:"candidates"`
}

// handleListElections serves all created elections; ?status=ongoing|past
// narrows the list.
func handleListElections(svc *election.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		switch c.Query("status") {
		case "":
			summaries, err := svc.Summaries(ctx)
			if err != nil {
				upstreamError(c, err)
				return
			}
			c.JSON(http.StatusOK, summaries)
		case "ongoing":
			ongoing, err := svc.Ongoing(ctx)
			if err != nil {
				upstreamError(c, err)
				return
			}
			c.JSON(http.StatusOK, toSummaries(ongoing, false))
		case "past":
			past, err := svc.Past(ctx)
			if err != nil {
				upstreamError(c, err)
				return
			}
			c.JSON(http.StatusOK, toSummaries(past, true))
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be ongoing or past"})
		}
	}
}

func handleElectionDetail(svc *election.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := svc.Detail(c.Request.Context(), c.Param("id"))
		if err != nil {
			if logging.IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "election not found"})
				return
			}
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, detailResponse{
			ElectionID:   d.Election.ElectionID,
			ElectionName: d.Election.ElectionName,
			Timestamp:    d.Election.Timestamp,
			Ended:        d.Ended,
			WinnerName:   d.WinnerName,
			Candidates:   d.Candidates,
		})
	}
}

func handleElectionCandidates(svc *election.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		roster, err := svc.Candidates(c.Request.Context(), c.Param("id"))
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, roster)
	}
}

func toSummaries(events []ledger.Event, ended bool) []election.Summary {
	summaries := make([]election.Summary, 0, len(events))
	for _, ev := range events {
		summaries = append(summaries, election.Summary{
			ID:         ev.ElectionID,
			Name:       ev.ElectionName,
			Ended:      ended,
			WinnerName: ev.WinnerName,
		})
	}
	return summaries
}

func upstreamError(c *gin.Context, err error) {
	log.Printf("webserver: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "upstream ledger unavailable"})
}
