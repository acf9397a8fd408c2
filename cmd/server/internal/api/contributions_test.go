package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showfolio/contrib-service/cmd/server/internal/contributions"
)

func mockOnlyService() *contributions.Service {
	gen := contributions.NewGenerator(rand.New(rand.NewSource(1)))
	return contributions.NewService(nil, gen, time.Minute, nil)
}

type contributionsEnvelope struct {
	Success bool                            `json:"success"`
	Data    contributions.ContributionStats `json:"data"`
}

func TestHandleGetContributions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/v1/users/:username/contributions", HandleGetContributions(mockOnlyService()))

	req := httptest.NewRequest("GET", "/api/v1/users/anyuser/contributions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp contributionsEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.True(t, resp.Data.IsMockData)
	assert.Nil(t, resp.Data.Year)

	total := 0
	for _, week := range resp.Data.Weeks {
		total += len(week.Days)
	}
	assert.Equal(t, 365, total)
}

func TestHandleGetContributionsWithYear(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/v1/users/:username/contributions", HandleGetContributions(mockOnlyService()))

	req := httptest.NewRequest("GET", "/api/v1/users/anyuser/contributions?year=2023", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp contributionsEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.Year)
	assert.Equal(t, 2023, *resp.Data.Year)
}

func TestHandleGetContributionsRejectsBadYear(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/v1/users/:username/contributions", HandleGetContributions(mockOnlyService()))

	for _, year := range []string{"abc", "1999", "2007", "9999"} {
		req := httptest.NewRequest("GET", "/api/v1/users/anyuser/contributions?year="+year, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "year=%s", year)
	}
}

func TestHandleCachePurge(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := mockOnlyService()
	r := gin.New()
	r.GET("/api/v1/users/:username/contributions", HandleGetContributions(svc))
	r.POST("/api/v1/admin/cache/purge", HandleCachePurge(svc))

	// Warm the cache first.
	req := httptest.NewRequest("GET", "/api/v1/users/anyuser/contributions", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest("POST", "/api/v1/admin/cache/purge", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Purged  int  `json:"purged"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Purged)
}
