package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/showfolio/contrib-service/cmd/server/internal/contributions"
)

// GitHub launched in 2008; years before that can only be typos.
const minYear = 2008

// HandleGetContributions GET /api/v1/users/:username/contributions?year=YYYY
// Returns contribution statistics for the user. Source failures never
// produce an error response: the service falls back to synthetic data
// and flags it via isMockData.
func HandleGetContributions(svc *contributions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		year := 0
		if raw := c.Query("year"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
				return
			}
			maxYear := time.Now().Year()
			if parsed < minYear || parsed > maxYear {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("year must be between %d and %d", minYear, maxYear),
				})
				return
			}
			year = parsed
		}

		stats, err := svc.Get(c.Request.Context(), username, year)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute contributions"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    stats,
		})
	}
}

// HandleCachePurge POST /api/v1/admin/cache/purge
// Drops all cached contribution statistics.
func HandleCachePurge(svc *contributions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		purged := svc.Purge()
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"purged":  purged,
		})
	}
}
