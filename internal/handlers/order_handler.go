package handlers

import (
	"net/http"
	"strconv"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"
	"restaurant_pos/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// createOrderRequest has no total fields: amounts are always derived from the
// verified cart. PaymentStatus is honoured for staff sessions only.
type createOrderRequest struct {
	Items         []models.CartItem    `json:"items"`
	Customer      services.Customer    `json:"customer"`
	OrderType     models.OrderType     `json:"orderType"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	Notes         string               `json:"notes"`
}

// CreateOrder places an order from the items in the body or, when the body has
// none, from the session cart, which is cleared on success.
func (h *APIHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	ctx := c.Request.Context()
	session := ""
	if len(req.Items) == 0 {
		session = h.cartSession(c, false)
		if session != "" {
			view, err := h.services.Cart.Get(ctx, session)
			if err != nil {
				h.respondError(c, err)
				return
			}
			req.Items = view.Items
		}
	}

	createdBy := currentUserID(c)
	if createdBy == nil {
		req.PaymentStatus = ""
	}

	order, err := h.services.Orders.CreateOrder(ctx, services.CreateOrderInput{
		Items:         req.Items,
		Customer:      req.Customer,
		OrderType:     req.OrderType,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		Notes:         req.Notes,
		CreatedBy:     createdBy,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	if session != "" {
		if _, err := h.services.Cart.Clear(ctx, session); err != nil {
			h.logger.Warn("failed to clear cart after checkout",
				zap.String("order_number", order.OrderNumber),
				zap.Error(err))
		}
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrder looks an order up by ORD- number; numeric ids are reserved for admins.
func (h *APIHandler) GetOrder(c *gin.Context) {
	ref := c.Param("ref")
	if !services.IsOrderNumber(ref) && !isAdmin(c) {
		if _, err := strconv.ParseUint(ref, 10, 64); err == nil {
			h.respondError(c, apperrors.Auth("sign in to look orders up by id"))
			return
		}
	}

	order, err := h.services.Orders.GetOrder(c.Request.Context(), ref)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) ListOrders(c *gin.Context) {
	filter := repository.OrderFilter{Status: c.Query("status")}
	var err error
	if v := c.Query("limit"); v != "" {
		if filter.Limit, err = strconv.Atoi(v); err != nil {
			badRequest(c, "Invalid limit")
			return
		}
	}
	if v := c.Query("offset"); v != "" {
		if filter.Offset, err = strconv.Atoi(v); err != nil {
			badRequest(c, "Invalid offset")
			return
		}
	}

	orders, err := h.services.Orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "limit": filter.Limit, "offset": filter.Offset})
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid order ID")
		return 0, false
	}
	return uint(id), true
}

func (h *APIHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	order, err := h.services.Orders.UpdateStatus(c.Request.Context(), id, req.Status, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req struct {
		PaymentStatus models.PaymentStatus `json:"paymentStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	order, err := h.services.Orders.UpdatePaymentStatus(c.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) GetOrderHistory(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	history, err := h.services.Orders.GetStatusHistory(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}
