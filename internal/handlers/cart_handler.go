package handlers

import (
	"net/http"
	"strconv"

	"restaurant_pos/internal/models"
	"restaurant_pos/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const cartCookie = "cart_session"

// cartSession returns the caller's cart session id, issuing a new cookie when
// create is set and none is present.
func (h *APIHandler) cartSession(c *gin.Context, create bool) string {
	if id, err := c.Cookie(cartCookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			h.setCartCookie(c, id)
			return id
		}
	}
	if !create {
		return ""
	}
	id := uuid.NewString()
	h.setCartCookie(c, id)
	return id
}

func (h *APIHandler) setCartCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cartCookie, id, int(h.cookies.CartTTL.Seconds()), "/", "", h.cookies.Secure, true)
}

func itemID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid item ID")
		return 0, false
	}
	return uint(id), true
}

func (h *APIHandler) GetCart(c *gin.Context) {
	view, err := h.services.Cart.Get(c.Request.Context(), h.cartSession(c, true))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) AddCartItem(c *gin.Context) {
	var req struct {
		MenuItemID uint `json:"menuItemId" binding:"required"`
		Quantity   int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	ctx := c.Request.Context()
	session := h.cartSession(c, true)
	view, err := h.services.Cart.AddItem(ctx, session, req.MenuItemID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if req.Quantity > 1 {
		for _, line := range view.Items {
			if line.ID == req.MenuItemID && line.Quantity < req.Quantity {
				view, err = h.services.Cart.UpdateQuantity(ctx, session, req.MenuItemID, req.Quantity)
				if err != nil {
					h.respondError(c, err)
					return
				}
				break
			}
		}
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) UpdateCartItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	view, err := h.services.Cart.UpdateQuantity(c.Request.Context(), h.cartSession(c, true), id, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) RemoveCartItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	view, err := h.services.Cart.RemoveItem(c.Request.Context(), h.cartSession(c, true), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) ClearCart(c *gin.Context) {
	view, err := h.services.Cart.Clear(c.Request.Context(), h.cartSession(c, true))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *APIHandler) QuoteCart(c *gin.Context) {
	orderType := models.OrderType(c.DefaultQuery("order_type", string(models.OrderTypePickup)))
	quote, err := h.services.Cart.Quote(c.Request.Context(), h.cartSession(c, true), orderType)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// VerifyCart checks either the cart in the request body or, when the body has no
// items, the session cart. Responds 409 with the corrected cart when stale.
func (h *APIHandler) VerifyCart(c *gin.Context) {
	var req struct {
		Items []models.CartItem `json:"items"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request format")
			return
		}
	}

	ctx := c.Request.Context()
	var (
		result *services.Verification
		err    error
	)
	if len(req.Items) > 0 {
		result, err = h.services.Verifier.Verify(ctx, req.Items)
	} else {
		result, err = h.services.Cart.Verify(ctx, h.cartSession(c, true))
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusOK
	if !result.Valid {
		status = http.StatusConflict
	}
	c.JSON(status, result)
}
