package dto

import (
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/models"
)

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SubCategoryResponse struct {
	ID          string            `json:"id"`
	CategoryID  string            `json:"categoryId"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	Category    *CategoryResponse `json:"category,omitempty"`
}

type SubCategoriesBySlugResponse struct {
	Category      CategoryResponse      `json:"category"`
	SubCategories []SubCategoryResponse `json:"subCategories"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type CreateSubCategoryRequest struct {
	CategoryID  string `json:"categoryId" binding:"required,uuid"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        string(c.Name),
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.ImagePath,
		CreatedAt:   c.CreatedAt,
	}
}

func NewCategoryList(cs []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cs))
	for i := range cs {
		out = append(out, NewCategoryResponse(&cs[i]))
	}
	return out
}

func NewSubCategoryResponse(s *models.SubCategory) SubCategoryResponse {
	r := SubCategoryResponse{
		ID:          s.ID.String(),
		CategoryID:  s.CategoryID.String(),
		Name:        s.Name,
		Description: s.Description,
		Image:       s.ImagePath,
	}
	if s.Category != nil {
		cr := NewCategoryResponse(s.Category)
		r.Category = &cr
	}
	return r
}

func NewSubCategoryList(ss []models.SubCategory) []SubCategoryResponse {
	out := make([]SubCategoryResponse, 0, len(ss))
	for i := range ss {
		out = append(out, NewSubCategoryResponse(&ss[i]))
	}
	return out
}
