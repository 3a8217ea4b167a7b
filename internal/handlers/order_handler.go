package handlers

import (
	"net/http"

	"github.com/rajeshboldtribe/boldserve/internal/dto"
	"github.com/rajeshboldtribe/boldserve/internal/models"
	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// CreateOrder godoc
// @Summary Создать заказ
// @Description Заказ создаётся в статусе pending; orderNumber генерируется, если не передан
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Заказ"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 404 {object} dto.NotFoundErrorResponse "Категория не найдена"
// @Failure 409 {object} dto.ConflictErrorResponse "Номер заказа занят"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		badRequest(c, h.log, "invalid category id", err)
		return
	}
	subCategoryID, err := uuid.Parse(req.SubCategoryID)
	if err != nil {
		badRequest(c, h.log, "invalid subcategory id", err)
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		OrderNumber:   req.OrderNumber,
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		Customer: models.CustomerDetails{
			Name:    req.CustomerDetails.Name,
			Email:   req.CustomerDetails.Email,
			Phone:   req.CustomerDetails.Phone,
			Address: req.CustomerDetails.Address,
		},
		Description: req.OrderDetails.Description,
		Quantity:    req.OrderDetails.Quantity,
		Price:       req.OrderDetails.Price,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewOrderResponse(order))
}

// ListOrders godoc
// @Summary Все заказы
// @Tags orders
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.OrderResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет API-ключа"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context(), nil)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderList(orders))
}

// ListOrdersByStatus godoc
// @Summary Заказы по статусу
// @Tags orders
// @Produce json
// @Security ApiKeyAuth
// @Param status path string true "pending | accepted | cancelled"
// @Success 200 {array} dto.OrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверный статус"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет API-ключа"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/orders/status/{status} [get]
func (h *OrderHandler) ListOrdersByStatus(c *gin.Context) {
	status := models.OrderStatus(c.Param("status"))
	orders, err := h.orders.ListOrders(c.Request.Context(), &status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderList(orders))
}

// GetOrder godoc
// @Summary Заказ по ID
// @Tags orders
// @Produce json
// @Param id path string true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Не найден"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// UpdateOrderStatus godoc
// @Summary Сменить статус заказа
// @Description Допустимы только pending -> accepted и pending -> cancelled
// @Tags orders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID заказа"
// @Param status body dto.UpdateOrderStatusRequest true "Новый статус"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверный статус"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет API-ключа"
// @Failure 404 {object} dto.NotFoundErrorResponse "Не найден"
// @Failure 409 {object} dto.InvalidTransitionErrorResponse "Недопустимый переход"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}
