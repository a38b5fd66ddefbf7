package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestActorFrom(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(middleware.ContextUserID, "u1")
	c.Set(middleware.ContextRoleType, "ADMIN")

	actor := actorFrom(c)
	assert.Equal(t, "u1", actor.ID)
	assert.Equal(t, models.RoleAdmin, actor.Role)
	assert.True(t, actor.IsAdmin())
}

func TestRespondPage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=2&size=2", nil)

	respondPage(c, []string{"a", "b", "c", "d", "e"})

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool                      `json:"success"`
		Data    dto.PaginatedList[string] `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, []string{"c", "d"}, body.Data.Items)
	assert.Equal(t, 5, body.Data.Pagination.TotalItems)
	assert.Equal(t, 3, body.Data.Pagination.TotalPages)
}

func TestBindOptionalJSON(t *testing.T) {
	t.Run("empty body is accepted", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPut, "/", nil)

		var req dto.ModerationRequest
		assert.True(t, bindOptionalJSON(c, &req))
		assert.Empty(t, req.Reason)
	})

	t.Run("body is bound", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"reason":"duplicate"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		var req dto.ModerationRequest
		assert.True(t, bindOptionalJSON(c, &req))
		assert.Equal(t, "duplicate", req.Reason)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"reason":`))
		c.Request.Header.Set("Content-Type", "application/json")

		var req dto.ModerationRequest
		assert.False(t, bindOptionalJSON(c, &req))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
