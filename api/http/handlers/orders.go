package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/shiptrack/api/api/http/presenter"
	"github.com/shiptrack/api/pkg/logging"
	"github.com/shiptrack/api/pkg/order"
	"github.com/shiptrack/api/pkg/security/jwt"
)

type OrderHandler struct {
	uc  order.UseCase
	log logging.Logger
}

func NewOrderHandler(uc order.UseCase, log logging.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

// @Summary     Create order
// @Description Creates a shipment owned by the caller. Status defaults to "Pending".
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       input body order.CreateInput true "shipment"
// @Security    BearerAuth
// @Success     201 {object} map[string]any
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	uid, ok := jwt.SubjectFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Not authorized")
	}
	var in order.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	o, err := h.uc.Create(c.UserContext(), uid, in)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"message": "Order created successfully",
		"order":   o,
	})
}

// @Summary  List orders
// @Tags     orders
// @Produce  json
// @Param    limit  query int false "page size (1-200, default 50)"
// @Param    offset query int false "offset"
// @Security BearerAuth
// @Success  200 {object} map[string]any
// @Failure  401 {object} presenter.ErrorResponse
// @Router   /orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	uid, ok := jwt.SubjectFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Not authorized")
	}
	limit, offset := pageParams(c, order.DefaultListLimit, order.MaxListLimit)
	orders, err := h.uc.List(c.UserContext(), uid, limit, offset)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message": "All orders retrieved successfully",
		"orders":  orders,
	})
}

// @Summary  Get order
// @Tags     orders
// @Produce  json
// @Param    orderId path string true "order id (UUID)"
// @Security BearerAuth
// @Success  200 {object} map[string]any
// @Failure  403 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /orders/{orderId} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	uid, id, ok := h.ids(c)
	if !ok {
		return nil
	}
	o, err := h.uc.Get(c.UserContext(), uid, id)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"order": o})
}

// @Summary     Update order
// @Description Partial update. Only the listed shipment fields are accepted.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       orderId path string true "order id (UUID)"
// @Param       input body order.UpdateInput true "fields to change"
// @Security    BearerAuth
// @Success     200 {object} map[string]any
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     403 {object} presenter.ErrorResponse
// @Failure     404 {object} presenter.ErrorResponse
// @Router      /orders/{orderId} [patch]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	uid, id, ok := h.ids(c)
	if !ok {
		return nil
	}
	var in order.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	o, err := h.uc.Update(c.UserContext(), uid, id, in)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message": "Order updated",
		"order":   o,
	})
}

// @Summary  Delete order
// @Tags     orders
// @Param    orderId path string true "order id (UUID)"
// @Security BearerAuth
// @Success  204 {object} nil
// @Failure  403 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /orders/{orderId} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	uid, id, ok := h.ids(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), uid, id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ids resolves the caller and the :orderId param. When it returns false the
// response has already been written.
func (h *OrderHandler) ids(c *fiber.Ctx) (uid, id uuid.UUID, ok bool) {
	uid, ok = jwt.SubjectFromCtx(c)
	if !ok {
		_ = presenter.Error(c, http.StatusUnauthorized, "Not authorized")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Params("orderId"))
	if err != nil {
		_ = presenter.Error(c, http.StatusBadRequest, "invalid order id")
		return uuid.Nil, uuid.Nil, false
	}
	return uid, id, true
}

func (h *OrderHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, order.ErrValidation):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrForbidden):
		return presenter.Error(c, http.StatusForbidden, "Not allowed")
	case errors.Is(err, order.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "Order not found")
	case errors.Is(err, order.ErrOwnerNotFound):
		return presenter.Error(c, http.StatusNotFound, "User not found")
	default:
		return presenter.Internal(c, h.log, "order operation failed", err)
	}
}
