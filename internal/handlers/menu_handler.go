package handlers

import (
	"net/http"
	"strconv"

	"restaurant_pos/internal/services"

	"github.com/gin-gonic/gin"
)

// GetMenu returns active categories with available items. Admins may pass
// ?all=true to include unavailable items.
func (h *APIHandler) GetMenu(c *gin.Context) {
	availableOnly := !(isAdmin(c) && c.Query("all") == "true")
	menu, err := h.services.Menu.GetMenu(c.Request.Context(), availableOnly)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": menu})
}

func (h *APIHandler) GetMenuItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	item, err := h.services.Menu.GetItem(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func categoryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid category ID")
		return 0, false
	}
	return uint(id), true
}

func (h *APIHandler) ListCategories(c *gin.Context) {
	categories, err := h.services.Menu.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *APIHandler) CreateCategory(c *gin.Context) {
	var input services.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request format")
		return
	}
	category, err := h.services.Menu.CreateCategory(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *APIHandler) UpdateCategory(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	var input services.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request format")
		return
	}
	category, err := h.services.Menu.UpdateCategory(c.Request.Context(), id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *APIHandler) DeleteCategory(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	if err := h.services.Menu.DeleteCategory(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *APIHandler) CreateMenuItem(c *gin.Context) {
	var input services.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request format")
		return
	}
	item, err := h.services.Menu.CreateItem(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *APIHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	var input services.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request format")
		return
	}
	item, err := h.services.Menu.UpdateItem(c.Request.Context(), id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *APIHandler) SetMenuItemAvailability(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	var req struct {
		IsAvailable *bool `json:"isAvailable" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}
	item, err := h.services.Menu.SetAvailability(c.Request.Context(), id, *req.IsAvailable)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *APIHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	if err := h.services.Menu.DeleteItem(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
