package webserver

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openballot/electionbot/src/election"
)

// New builds the read-only HTTP facade over the election views.
func New(svc *election.Service) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery(), requestID())
	attachRoutes(g, svc)
	return g
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
