package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rajeshboldtribe/boldserve/internal/models"
	repo "github.com/rajeshboldtribe/boldserve/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type taxonomyService struct {
	cats CategoryRepo
	log  *zap.Logger
}

func NewTaxonomyService(cats CategoryRepo, log *zap.Logger) TaxonomyService {
	return &taxonomyService{cats: cats, log: log}
}

// Bootstrap засевает все категории и их подкатегории. Повторный вызов ничего не меняет.
func (s *taxonomyService) Bootstrap(ctx context.Context) error {
	if err := s.seedCategories(ctx); err != nil {
		return err
	}
	cats, err := s.cats.ListCategories(ctx)
	if err != nil {
		return err
	}
	for i := range cats {
		if err := s.seedSubCategories(ctx, &cats[i]); err != nil {
			return err
		}
	}
	s.log.Info("Таксономия инициализирована", zap.Int("categories", len(cats)))
	return nil
}

func (s *taxonomyService) ListCategories(ctx context.Context) ([]models.Category, error) {
	n, err := s.cats.CountCategories(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if err := s.seedCategories(ctx); err != nil {
			return nil, err
		}
	}
	return s.cats.ListCategories(ctx)
}

func (s *taxonomyService) ListSubCategories(ctx context.Context, categoryID uuid.UUID) ([]models.SubCategory, error) {
	cat, err := s.cats.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}
	return s.subCategoriesOf(ctx, cat)
}

func (s *taxonomyService) ListSubCategoriesBySlug(ctx context.Context, slug string) (*models.Category, []models.SubCategory, error) {
	cat, err := s.cats.GetCategoryBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, nil, err
	}
	if cat == nil {
		return nil, nil, ErrNotFound
	}
	subs, err := s.subCategoriesOf(ctx, cat)
	if err != nil {
		return nil, nil, err
	}
	return cat, subs, nil
}

func (s *taxonomyService) ListAllSubCategories(ctx context.Context) ([]models.SubCategory, error) {
	return s.cats.ListAllSubCategories(ctx)
}

func (s *taxonomyService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	name := models.CategoryName(strings.TrimSpace(in.Name))
	if !name.Valid() {
		return nil, invalid("name", "category must be one of: Office Stationeries, Print and Demands, IT Services and Repair")
	}
	c := &models.Category{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		ImagePath:   in.ImagePath,
	}
	if err := s.cats.CreateCategory(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return c, nil
}

func (s *taxonomyService) CreateSubCategory(ctx context.Context, in CreateSubCategoryInput) (*models.SubCategory, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", "name is required")
	}
	cat, err := s.cats.GetCategoryByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}
	sub := &models.SubCategory{
		CategoryID:  cat.ID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		ImagePath:   in.ImagePath,
	}
	if err := s.cats.CreateSubCategory(ctx, sub); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return sub, nil
}

func (s *taxonomyService) subCategoriesOf(ctx context.Context, cat *models.Category) ([]models.SubCategory, error) {
	n, err := s.cats.CountSubCategories(ctx, cat.ID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if err := s.seedSubCategories(ctx, cat); err != nil {
			return nil, err
		}
	}
	return s.cats.ListSubCategories(ctx, cat.ID)
}

func (s *taxonomyService) seedCategories(ctx context.Context) error {
	cats := make([]models.Category, 0, len(defaultTaxonomy))
	for _, seed := range defaultTaxonomy {
		cats = append(cats, models.Category{
			Name:        seed.Name,
			Description: seed.Description,
			ImagePath:   seed.ImagePath,
		})
	}
	inserted, err := s.cats.EnsureCategories(ctx, cats)
	if err != nil {
		s.log.Error("Не удалось засеять категории", zap.Error(err))
		return err
	}
	if inserted > 0 {
		s.log.Info("Засеяны категории по умолчанию", zap.Int64("inserted", inserted))
	}
	return nil
}

func (s *taxonomyService) seedSubCategories(ctx context.Context, cat *models.Category) error {
	seed, ok := seedFor(cat.Name)
	if !ok {
		return nil
	}
	subs := make([]models.SubCategory, 0, len(seed.SubCategories))
	for _, sc := range seed.SubCategories {
		subs = append(subs, models.SubCategory{
			CategoryID:  cat.ID,
			Name:        sc.Name,
			Description: sc.Description,
			ImagePath:   sc.ImagePath,
		})
	}
	inserted, err := s.cats.EnsureSubCategories(ctx, subs)
	if err != nil {
		s.log.Error("Не удалось засеять подкатегории", zap.String("category", string(cat.Name)), zap.Error(err))
		return err
	}
	if inserted > 0 {
		s.log.Info("Засеяны подкатегории по умолчанию",
			zap.String("category", string(cat.Name)),
			zap.Int64("inserted", inserted))
	}
	return nil
}
