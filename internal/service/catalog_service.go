package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rajeshboldtribe/boldserve/internal/models"
	repo "github.com/rajeshboldtribe/boldserve/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type catalogService struct {
	services ServiceRepo
	cats     CategoryRepo
	images   ImageStore
	log      *zap.Logger
}

func NewCatalogService(services ServiceRepo, cats CategoryRepo, images ImageStore, log *zap.Logger) CatalogService {
	return &catalogService{services: services, cats: cats, images: images, log: log}
}

// ListProducts никогда не возвращает ошибку на несовпавший фильтр, только пустой список.
func (s *catalogService) ListProducts(ctx context.Context, f ProductFilter) ([]models.Service, error) {
	return s.services.List(ctx, repo.ServiceListFilter{
		Category:    strings.TrimSpace(f.Category),
		SubCategory: strings.TrimSpace(f.SubCategory),
	})
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	p, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, in CreateProductInput, image *ImageUpload) (*models.Service, error) {
	in.Category = strings.TrimSpace(in.Category)
	in.SubCategory = strings.TrimSpace(in.SubCategory)
	in.ProductName = strings.TrimSpace(in.ProductName)
	in.Description = strings.TrimSpace(in.Description)

	switch {
	case in.Category == "":
		return nil, invalid("category", "category is required")
	case in.SubCategory == "":
		return nil, invalid("subCategory", "subCategory is required")
	case in.ProductName == "":
		return nil, invalid("productName", "productName is required")
	case strings.TrimSpace(in.Price) == "":
		return nil, invalid("price", "price is required")
	case in.Description == "":
		return nil, invalid("description", "description is required")
	}

	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}

	rating := 0.0
	if in.Rating != nil {
		rating = *in.Rating
		if err := checkRating(rating); err != nil {
			return nil, err
		}
	}

	if image == nil || image.Content == nil {
		return nil, ErrImageRequired
	}

	cat, sub, err := s.resolveTaxonomy(ctx, in.Category, in.SubCategory)
	if err != nil {
		return nil, err
	}

	path, err := s.images.Save(ctx, image)
	if err != nil {
		return nil, err
	}

	p := &models.Service{
		CategoryID:    cat.ID,
		SubCategoryID: sub.ID,
		ProductName:   in.ProductName,
		Price:         price,
		Description:   in.Description,
		Offers:        optional(in.Offers),
		Review:        optional(in.Review),
		Rating:        rating,
		ImagePath:     path,
	}
	if err := s.services.Create(ctx, p); err != nil {
		if rmErr := s.images.Remove(path); rmErr != nil {
			s.log.Warn("failed to remove orphaned image", zap.String("path", path), zap.Error(rmErr))
		}
		return nil, err
	}
	p.Category = cat
	p.SubCategory = sub

	s.log.Info("service created",
		zap.String("id", p.ID.String()),
		zap.String("category", string(cat.Name)),
		zap.String("subCategory", sub.Name))
	return p, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput, image *ImageUpload) (*models.Service, error) {
	current, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	var upd repo.ServiceUpdate
	if in.ProductName != nil {
		name := strings.TrimSpace(*in.ProductName)
		if name == "" {
			return nil, invalid("productName", "productName must not be empty")
		}
		upd.ProductName = &name
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			return nil, invalid("description", "description must not be empty")
		}
		upd.Description = &d
	}
	if in.Price != nil {
		price, err := parsePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		upd.Price = &price
	}
	if in.Rating != nil {
		if err := checkRating(*in.Rating); err != nil {
			return nil, err
		}
		upd.Rating = in.Rating
	}
	if in.Offers != nil {
		o := strings.TrimSpace(*in.Offers)
		upd.Offers = &o
	}
	if in.Review != nil {
		r := strings.TrimSpace(*in.Review)
		upd.Review = &r
	}

	// Таксономия разрешается так же, как при создании; недостающая половина берётся из текущей позиции.
	if in.Category != nil || in.SubCategory != nil {
		catName, subName, err := s.currentTaxonomyNames(ctx, current)
		if err != nil {
			return nil, err
		}
		if in.Category != nil {
			catName = strings.TrimSpace(*in.Category)
			if catName == "" {
				return nil, invalid("category", "category must not be empty")
			}
		}
		if in.SubCategory != nil {
			subName = strings.TrimSpace(*in.SubCategory)
			if subName == "" {
				return nil, invalid("subCategory", "subCategory must not be empty")
			}
		}
		cat, sub, err := s.resolveTaxonomy(ctx, catName, subName)
		if err != nil {
			return nil, err
		}
		upd.CategoryID = &cat.ID
		upd.SubCategoryID = &sub.ID
	}

	var newPath string
	if image != nil && image.Content != nil {
		newPath, err = s.images.Save(ctx, image)
		if err != nil {
			return nil, err
		}
		upd.ImagePath = &newPath
	}

	if err := s.services.Update(ctx, id, upd); err != nil {
		if newPath != "" {
			if rmErr := s.images.Remove(newPath); rmErr != nil {
				s.log.Warn("failed to remove orphaned image", zap.String("path", newPath), zap.Error(rmErr))
			}
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if newPath != "" && current.ImagePath != "" && current.ImagePath != newPath {
		if err := s.images.Remove(current.ImagePath); err != nil {
			s.log.Warn("failed to remove previous service image", zap.String("path", current.ImagePath), zap.Error(err))
		}
	}

	s.log.Info("service updated", zap.String("id", id.String()))
	return s.GetProduct(ctx, id)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	current, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.services.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if current.ImagePath != "" {
		if err := s.images.Remove(current.ImagePath); err != nil {
			s.log.Warn("failed to remove service image", zap.String("path", current.ImagePath), zap.Error(err))
		}
	}
	s.log.Info("service deleted", zap.String("id", id.String()))
	return nil
}

// resolveTaxonomy ищет категорию и подкатегорию по именам без учёта регистра.
func (s *catalogService) resolveTaxonomy(ctx context.Context, category, subCategory string) (*models.Category, *models.SubCategory, error) {
	cat, err := s.cats.GetCategoryByName(ctx, category)
	if err != nil {
		return nil, nil, err
	}
	if cat == nil {
		return nil, nil, invalid("category", "unknown category")
	}
	sub, err := s.cats.GetSubCategoryByName(ctx, cat.ID, subCategory)
	if err != nil {
		return nil, nil, err
	}
	if sub == nil {
		return nil, nil, invalid("subCategory", "unknown subCategory for category "+string(cat.Name))
	}
	return cat, sub, nil
}

func (s *catalogService) currentTaxonomyNames(ctx context.Context, p *models.Service) (string, string, error) {
	cat, sub := p.Category, p.SubCategory
	var err error
	if cat == nil {
		if cat, err = s.cats.GetCategoryByID(ctx, p.CategoryID); err != nil {
			return "", "", err
		}
	}
	if sub == nil {
		if sub, err = s.cats.GetSubCategoryByID(ctx, p.SubCategoryID); err != nil {
			return "", "", err
		}
	}
	if cat == nil || sub == nil {
		return "", "", fmt.Errorf("service %s references missing taxonomy", p.ID)
	}
	return string(cat.Name), sub.Name, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, invalid("price", "price must be a number")
	}
	if price.IsNegative() {
		return decimal.Zero, invalid("price", "price must be >= 0")
	}
	if err := checkAmount("price", price); err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

func checkRating(r float64) error {
	if r < 0 || r > 5 {
		return invalid("rating", "rating must be between 0 and 5")
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
