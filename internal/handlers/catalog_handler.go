package handlers

import (
	"net/http"

	"github.com/rajeshboldtribe/boldserve/internal/dto"
	"github.com/rajeshboldtribe/boldserve/internal/middleware"
	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// ListServices godoc
// @Summary Все услуги и товары
// @Tags services
// @Produce json
// @Success 200 {array} dto.ServiceResponse
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	items, err := h.catalog.ListProducts(c.Request.Context(), service.ProductFilter{})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewServiceList(items))
}

// FilterServices godoc
// @Summary Фильтр по категории и подкатегории
// @Description Точное совпадение без учёта регистра; несовпавший фильтр даёт пустой список
// @Tags services
// @Produce json
// @Param category query string false "Категория"
// @Param subCategory query string false "Подкатегория"
// @Success 200 {array} dto.ServiceResponse
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/services/category [get]
func (h *CatalogHandler) FilterServices(c *gin.Context) {
	items, err := h.catalog.ListProducts(c.Request.Context(), service.ProductFilter{
		Category:    c.Query("category"),
		SubCategory: c.Query("subCategory"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewServiceList(items))
}

// GetService godoc
// @Summary Услуга по ID
// @Tags services
// @Produce json
// @Param id path string true "ID услуги"
// @Success 200 {object} dto.ServiceResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Не найдено"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/services/{id} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewServiceResponse(item))
}

// CreateService godoc
// @Summary Создать услугу
// @Tags services
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param category formData string true "Категория"
// @Param subCategory formData string true "Подкатегория"
// @Param productName formData string true "Название"
// @Param price formData string true "Цена"
// @Param description formData string true "Описание"
// @Param offers formData string false "Предложения"
// @Param review formData string false "Отзыв"
// @Param rating formData number false "Рейтинг 0..5"
// @Param image formData file true "Изображение"
// @Success 201 {object} dto.ServiceResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные или файл"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет API-ключа"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var form dto.CreateServiceForm
	if err := c.ShouldBind(&form); err != nil {
		if middleware.IsBodyTooLarge(err) {
			respondError(c, h.log, err)
			return
		}
		badRequest(c, h.log, "invalid form", err)
		return
	}

	img, closer, err := formImage(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	item, err := h.catalog.CreateProduct(c.Request.Context(), service.CreateProductInput{
		Category:    form.Category,
		SubCategory: form.SubCategory,
		ProductName: form.ProductName,
		Price:       form.Price,
		Description: form.Description,
		Offers:      form.Offers,
		Review:      form.Review,
		Rating:      form.Rating,
	}, img)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewServiceResponse(item))
}

// UpdateService godoc
// @Summary Изменить услугу
// @Description Меняются только переданные поля. Новое изображение заменяет старое, старый файл удаляется
// @Tags services
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID услуги"
// @Param category formData string false "Категория"
// @Param subCategory formData string false "Подкатегория"
// @Param productName formData string false "Название"
// @Param price formData string false "Цена"
// @Param description formData string false "Описание"
// @Param offers formData string false "Предложения, пустая строка сбрасывает"
// @Param review formData string false "Отзыв, пустая строка сбрасывает"
// @Param rating formData number false "Рейтинг 0..5"
// @Param image formData file false "Новое изображение"
// @Success 200 {object} dto.ServiceResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные или файл"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет API-ключа"
// @Failure 404 {object} dto.NotFoundErrorResponse "Не найдено"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/services/{id} [patch]
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var form dto.UpdateServiceForm
	if err := c.ShouldBind(&form); err != nil {
		if middleware.IsBodyTooLarge(err) {
			respondError(c, h.log, err)
			return
		}
		badRequest(c, h.log, "invalid form", err)
		return
	}

	img, closer, err := formImage(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	item, err := h.catalog.UpdateProduct(c.Request.Context(), id, service.UpdateProductInput{
		Category:    form.Category,
		SubCategory: form.SubCategory,
		ProductName: form.ProductName,
		Price:       form.Price,
		Description: form.Description,
		Offers:      form.Offers,
		Review:      form.Review,
		Rating:      form.Rating,
	}, img)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewServiceResponse(item))
}

// DeleteService godoc
// @Summary Удалить услугу
// @Tags services
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID услуги"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет API-ключа"
// @Failure 404 {object} dto.NotFoundErrorResponse "Не найдено"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/services/{id} [delete]
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "service deleted"})
}
