package http

import (
	"github.com/gin-gonic/gin"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/http/respond"
)

// AuditController lists recorded audit events.
type AuditController struct {
	events AuditEventReader
}

func NewAuditController(events AuditEventReader) *AuditController {
	return &AuditController{events: events}
}

// List handles GET /audit-events?limit&offset&userId&type
func (ac *AuditController) List(c *gin.Context) {
	p, ok := parsePagination(c)
	if !ok {
		return
	}
	eventType := entities.AuditEventType(c.Query("type"))
	respond.Result(c, ac.events.GetEvents(c.Request.Context(), c.Query("userId"), eventType, p))
}
