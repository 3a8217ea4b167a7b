package handlers

import (
	"net/http"

	"github.com/rajeshboldtribe/boldserve/internal/dto"
	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaxonomyHandler struct {
	taxonomy service.TaxonomyService
	log      *zap.Logger
}

func NewTaxonomyHandler(taxonomy service.TaxonomyService, log *zap.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy, log: log}
}

// ListCategories godoc
// @Summary Список категорий
// @Description Возвращает все категории; при пустой таблице засевает фиксированный набор
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/categories [get]
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	cats, err := h.taxonomy.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryList(cats))
}

// ListSubCategories godoc
// @Summary Подкатегории категории
// @Tags categories
// @Produce json
// @Param categoryId path string true "ID категории"
// @Success 200 {array} dto.SubCategoryResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Категория не найдена"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/categories/{categoryId}/sub-categories [get]
func (h *TaxonomyHandler) ListSubCategories(c *gin.Context) {
	id, ok := pathID(c, "categoryId")
	if !ok {
		return
	}
	subs, err := h.taxonomy.ListSubCategories(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSubCategoryList(subs))
}

// ListAllSubCategories godoc
// @Summary Все подкатегории
// @Tags subcategories
// @Produce json
// @Success 200 {array} dto.SubCategoryResponse
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/subcategories [get]
func (h *TaxonomyHandler) ListAllSubCategories(c *gin.Context) {
	subs, err := h.taxonomy.ListAllSubCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSubCategoryList(subs))
}

// ListSubCategoriesBySlug godoc
// @Summary Подкатегории по slug категории
// @Tags subcategories
// @Produce json
// @Param slug path string true "Slug категории, например office-stationeries"
// @Success 200 {object} dto.SubCategoriesBySlugResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Категория не найдена"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/subcategories/slug/{slug} [get]
func (h *TaxonomyHandler) ListSubCategoriesBySlug(c *gin.Context) {
	cat, subs, err := h.taxonomy.ListSubCategoriesBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.SubCategoriesBySlugResponse{
		Category:      dto.NewCategoryResponse(cat),
		SubCategories: dto.NewSubCategoryList(subs),
	})
}

// CreateCategory godoc
// @Summary Создать категорию
// @Description Имя должно входить в фиксированный набор категорий
// @Tags categories
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param category body dto.CreateCategoryRequest true "Категория"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет API-ключа"
// @Failure 409 {object} dto.ConflictErrorResponse "Уже существует"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/categories [post]
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	cat, err := h.taxonomy.CreateCategory(c.Request.Context(), service.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ImagePath:   req.Image,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCategoryResponse(cat))
}

// CreateSubCategory godoc
// @Summary Создать подкатегорию
// @Tags categories
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param subCategory body dto.CreateSubCategoryRequest true "Подкатегория"
// @Success 201 {object} dto.SubCategoryResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет API-ключа"
// @Failure 404 {object} dto.NotFoundErrorResponse "Категория не найдена"
// @Failure 409 {object} dto.ConflictErrorResponse "Уже существует"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/categories/sub-category [post]
func (h *TaxonomyHandler) CreateSubCategory(c *gin.Context) {
	var req dto.CreateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		badRequest(c, h.log, "invalid category id", err)
		return
	}
	sub, err := h.taxonomy.CreateSubCategory(c.Request.Context(), service.CreateSubCategoryInput{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		ImagePath:   req.Image,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSubCategoryResponse(sub))
}

