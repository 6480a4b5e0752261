package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/homebranch/server/internal/http/respond"
	"github.com/homebranch/server/internal/result"
)

// listQuery holds the common listing parameters ?limit&offset&query&userId.
type listQuery struct {
	Query      string
	Pagination result.Pagination
	UserID     string
}

// --- Parameter Parsing ---

// parsePagination reads ?limit and ?offset. Both are optional; limit must
// be positive and offset must not be negative. On invalid input it responds
// with 400 and returns false.
func parsePagination(c *gin.Context) (result.Pagination, bool) {
	var p result.Pagination

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			respond.BadRequest(c, "limit must be a positive number")
			return p, false
		}
		p.Limit = limit
	}

	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			respond.BadRequest(c, "offset must not be less than 0")
			return p, false
		}
		p.Offset = offset
	}

	return p, true
}

// parseListQuery reads pagination plus the optional query and userId filters.
func parseListQuery(c *gin.Context) (listQuery, bool) {
	p, ok := parsePagination(c)
	if !ok {
		return listQuery{}, false
	}
	return listQuery{
		Query:      strings.TrimSpace(c.Query("query")),
		Pagination: p,
		UserID:     c.Query("userId"),
	}, true
}

// bindJSON decodes the request body into dst. On failure it responds with
// 400 and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respond.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// --- Success Response Helpers ---

// respondAccepted sends a 202 Accepted envelope (for async operations).
func respondAccepted(c *gin.Context, value any) {
	c.JSON(http.StatusAccepted, respond.Envelope{Success: true, Value: value})
}

// --- URLs ---

// baseURL returns the configured public base URL, or one derived from the
// request scheme and host.
func baseURL(c *gin.Context, configured string) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}
	scheme := "http"
	if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
