package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rajeshboldtribe/boldserve/internal/dto"
	"github.com/rajeshboldtribe/boldserve/internal/models"
	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	redirectStatusError     = "ERROR"
	redirectStatusCancelled = "CANCELLED"
)

type PaymentHandler struct {
	payments    service.PaymentService
	frontendURL string
	log         *zap.Logger
}

func NewPaymentHandler(payments service.PaymentService, frontendURL string, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, frontendURL: frontendURL, log: log}
}

func (h *PaymentHandler) redirect(c *gin.Context, status string) {
	c.Redirect(http.StatusFound, h.frontendURL+"/payment-status?"+url.Values{"status": {status}}.Encode())
}

// CreatePayment godoc
// @Summary Создать платёж
// @Description Сохраняет платёж в статусе created и возвращает поля для редиректа на шлюз (amount в пайсах)
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.CreatePaymentRequest true "Платёж"
// @Success 201 {object} dto.GatewayRequestResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/payments/create [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	gw, err := h.payments.CreatePayment(c.Request.Context(), service.CreatePaymentInput{
		Amount:        req.Amount,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewGatewayRequestResponse(gw))
}

// InitiatePayment godoc
// @Summary Отметить переход на страницу шлюза
// @Description created -> pending; повторный вызов для pending идемпотентен
// @Tags payments
// @Produce json
// @Param orderId path string true "ID платежа (ORDER_...)"
// @Success 200 {object} dto.PaymentStatusResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Не найден"
// @Failure 409 {object} dto.InvalidTransitionErrorResponse "Платёж уже завершён"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/payments/{orderId}/initiate [post]
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	p, err := h.payments.Initiate(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaymentStatusResponse(p))
}

// Callback godoc
// @Summary Callback платёжного шлюза
// @Description Проверяет HMAC-подпись и сумму, фиксирует исход и перенаправляет на фронтенд
// @Tags payments
// @Accept x-www-form-urlencoded
// @Accept json
// @Param order_id formData string true "ID платежа"
// @Param tracking_id formData string false "Tracking ID"
// @Param bank_ref_no formData string false "Bank ref"
// @Param order_status formData string true "SUCCESS | FAILURE | ..."
// @Param payment_mode formData string false "Способ оплаты"
// @Param amount formData string true "Сумма в пайсах"
// @Param checksum formData string true "hex HMAC-SHA256"
// @Success 302 "Redirect to FRONTEND_URL/payment-status?status=..."
// @Router /api/payments/callback [post]
func (h *PaymentHandler) Callback(c *gin.Context) {
	var req dto.CallbackRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Warn("invalid payment callback", zap.Error(err))
		h.redirect(c, redirectStatusError)
		return
	}
	if _, err := h.payments.HandleCallback(c.Request.Context(), req.ToInput()); err != nil {
		h.logRedirectError("payment callback rejected", req.OrderID, err)
		h.redirect(c, redirectStatusError)
		return
	}
	h.redirect(c, req.OrderStatus)
}

// Cancel godoc
// @Summary Отмена оплаты покупателем
// @Tags payments
// @Accept x-www-form-urlencoded
// @Accept json
// @Param order_id formData string true "ID платежа"
// @Success 302 "Redirect to FRONTEND_URL/payment-status?status=CANCELLED|ERROR"
// @Router /api/payments/cancel [post]
func (h *PaymentHandler) Cancel(c *gin.Context) {
	var req dto.CancelRequest
	if err := c.ShouldBind(&req); err != nil || req.OrderID == "" {
		h.log.Warn("invalid payment cancel request", zap.Error(err))
		h.redirect(c, redirectStatusError)
		return
	}
	if _, err := h.payments.Cancel(c.Request.Context(), req.OrderID); err != nil {
		h.logRedirectError("payment cancel rejected", req.OrderID, err)
		h.redirect(c, redirectStatusError)
		return
	}
	h.redirect(c, redirectStatusCancelled)
}

func (h *PaymentHandler) logRedirectError(msg, orderID string, err error) {
	switch {
	case errors.Is(err, service.ErrChecksumMismatch),
		errors.Is(err, service.ErrAmountMismatch),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrInvalidTransition):
		h.log.Warn(msg, zap.String("order_id", orderID), zap.Error(err))
	default:
		h.log.Error(msg, zap.String("order_id", orderID), zap.Error(err))
	}
}

// GetStatus godoc
// @Summary Статус платежа
// @Tags payments
// @Produce json
// @Param orderId path string true "ID платежа (ORDER_...)"
// @Success 200 {object} dto.PaymentStatusResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Не найден"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/payments/status/{orderId} [get]
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	p, err := h.payments.GetStatus(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaymentStatusResponse(p))
}

// ListPayments godoc
// @Summary Список платежей
// @Tags payments
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "created | pending | completed | failed"
// @Param limit query int false "Лимит (по умолчанию 50)"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.PaymentListResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные параметры"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет API-ключа"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	var f service.PaymentListFilter
	if s := c.Query("status"); s != "" {
		st := models.PaymentStatus(s)
		f.Status = &st
	}
	var err error
	if f.Limit, err = queryInt(c, "limit", 50); err != nil {
		badRequest(c, h.log, "invalid limit", err)
		return
	}
	if f.Offset, err = queryInt(c, "offset", 0); err != nil {
		badRequest(c, h.log, "invalid offset", err)
		return
	}
	items, total, err := h.payments.ListPayments(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaymentList(items, total))
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New(key + " must be a non-negative integer")
	}
	return n, nil
}
