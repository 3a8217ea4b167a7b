package dto

import (
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/models"

	"github.com/shopspring/decimal"
)

func init() {
	// Цены отдаются числом, а не строкой.
	decimal.MarshalJSONWithoutQuotes = true
}

// CreateServiceForm — multipart-поля POST /api/services (файл передаётся в поле image).
type CreateServiceForm struct {
	Category    string   `form:"category"`
	SubCategory string   `form:"subCategory"`
	ProductName string   `form:"productName"`
	Price       string   `form:"price"`
	Description string   `form:"description"`
	Offers      string   `form:"offers"`
	Review      string   `form:"review"`
	Rating      *float64 `form:"rating"`
}

// UpdateServiceForm — multipart-поля PATCH /api/services/:id; отсутствующее поле не меняется.
type UpdateServiceForm struct {
	Category    *string  `form:"category"`
	SubCategory *string  `form:"subCategory"`
	ProductName *string  `form:"productName"`
	Price       *string  `form:"price"`
	Description *string  `form:"description"`
	Offers      *string  `form:"offers"`
	Review      *string  `form:"review"`
	Rating      *float64 `form:"rating"`
}

type ServiceResponse struct {
	ID            string          `json:"id"`
	CategoryID    string          `json:"categoryId"`
	SubCategoryID string          `json:"subCategoryId"`
	Category      string          `json:"category"`
	SubCategory   string          `json:"subCategory"`
	ProductName   string          `json:"productName"`
	Price         decimal.Decimal `json:"price" swaggertype:"number"`
	Description   string          `json:"description"`
	Offers        *string         `json:"offers,omitempty"`
	Review        *string         `json:"review,omitempty"`
	Rating        float64         `json:"rating"`
	Image         string          `json:"image"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func NewServiceResponse(s *models.Service) ServiceResponse {
	r := ServiceResponse{
		ID:            s.ID.String(),
		CategoryID:    s.CategoryID.String(),
		SubCategoryID: s.SubCategoryID.String(),
		ProductName:   s.ProductName,
		Price:         s.Price,
		Description:   s.Description,
		Offers:        s.Offers,
		Review:        s.Review,
		Rating:        s.Rating,
		Image:         s.ImagePath,
		CreatedAt:     s.CreatedAt,
	}
	if s.Category != nil {
		r.Category = string(s.Category.Name)
	}
	if s.SubCategory != nil {
		r.SubCategory = s.SubCategory.Name
	}
	return r
}

func NewServiceList(ss []models.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(ss))
	for i := range ss {
		out = append(out, NewServiceResponse(&ss[i]))
	}
	return out
}
