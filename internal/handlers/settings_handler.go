package handlers

import (
	"encoding/json"
	"net/http"

	"restaurant_pos/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *APIHandler) GetSettings(c *gin.Context) {
	settings, err := h.services.Settings.Get(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings applies a partial update. Unknown fields are rejected.
func (h *APIHandler) UpdateSettings(c *gin.Context) {
	var patch models.SettingsPatch
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil {
		badRequest(c, "Invalid settings: "+err.Error())
		return
	}

	settings, err := h.services.Settings.Update(c.Request.Context(), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
