package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rajeshboldtribe/boldserve/internal/models"
	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestTaxonomy_ListCategoriesSeedsOnce(t *testing.T) {
	ctx := context.Background()
	cats := &memCategoryRepo{}
	svc := service.NewTaxonomyService(cats, zap.NewNop())

	for i := 0; i < 2; i++ {
		list, err := svc.ListCategories(ctx)
		if err != nil {
			t.Fatalf("ListCategories: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(list))
		}
		slugs := map[string]bool{}
		for _, c := range list {
			if slugs[c.Slug] {
				t.Fatalf("duplicate slug %q", c.Slug)
			}
			slugs[c.Slug] = true
		}
	}
}

func TestTaxonomy_BootstrapIdempotent(t *testing.T) {
	ctx := context.Background()
	cats := &memCategoryRepo{}
	svc := service.NewTaxonomyService(cats, zap.NewNop())

	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	first, _ := svc.ListAllSubCategories(ctx)
	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap again: %v", err)
	}
	second, _ := svc.ListAllSubCategories(ctx)
	if len(first) == 0 || len(first) != len(second) {
		t.Fatalf("subcategories changed between bootstraps: %d -> %d", len(first), len(second))
	}
}

func TestTaxonomy_ConcurrentSubCategorySeed(t *testing.T) {
	ctx := context.Background()
	cats := &memCategoryRepo{}
	svc := service.NewTaxonomyService(cats, zap.NewNop())

	list, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	catID := list[0].ID

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ListSubCategories(ctx, catID); err != nil {
				t.Errorf("ListSubCategories: %v", err)
			}
		}()
	}
	wg.Wait()

	subs, _ := svc.ListSubCategories(ctx, catID)
	seen := map[string]bool{}
	for _, s := range subs {
		key := strings.ToLower(s.Name)
		if seen[key] {
			t.Fatalf("duplicate subcategory %q", s.Name)
		}
		seen[key] = true
	}
	if len(subs) == 0 {
		t.Fatal("expected seeded subcategories")
	}
}

func TestTaxonomy_UnknownCategory(t *testing.T) {
	svc := service.NewTaxonomyService(&memCategoryRepo{}, zap.NewNop())
	if _, err := svc.ListSubCategories(context.Background(), uuid.New()); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := svc.ListSubCategoriesBySlug(context.Background(), "nope"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound by slug, got %v", err)
	}
}

func TestTaxonomy_BySlug(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTaxonomyService(&memCategoryRepo{}, zap.NewNop())
	if err := svc.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	cat, subs, err := svc.ListSubCategoriesBySlug(ctx, " IT-Services-and-Repair ")
	if err != nil {
		t.Fatalf("by slug: %v", err)
	}
	if cat.Name != models.CategoryITServices || len(subs) == 0 {
		t.Fatalf("unexpected result: %+v, %d subs", cat, len(subs))
	}
}

func TestTaxonomy_CreateCategory(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTaxonomyService(&memCategoryRepo{}, zap.NewNop())

	if _, err := svc.CreateCategory(ctx, service.CreateCategoryInput{Name: "Groceries"}); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	c, err := svc.CreateCategory(ctx, service.CreateCategoryInput{Name: string(models.CategoryOfficeStationeries)})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if c.Slug != "office-stationeries" {
		t.Fatalf("unexpected slug %q", c.Slug)
	}
	if _, err := svc.CreateCategory(ctx, service.CreateCategoryInput{Name: string(models.CategoryOfficeStationeries)}); !errors.Is(err, service.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestTaxonomy_CreateSubCategory(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTaxonomyService(&memCategoryRepo{}, zap.NewNop())
	list, _ := svc.ListCategories(ctx)

	in := service.CreateSubCategoryInput{CategoryID: list[0].ID, Name: "Staplers"}
	if _, err := svc.CreateSubCategory(ctx, in); err != nil {
		t.Fatalf("CreateSubCategory: %v", err)
	}
	in.Name = "STAPLERS"
	if _, err := svc.CreateSubCategory(ctx, in); !errors.Is(err, service.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if _, err := svc.CreateSubCategory(ctx, service.CreateSubCategoryInput{CategoryID: uuid.New(), Name: "x"}); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.CreateSubCategory(ctx, service.CreateSubCategoryInput{CategoryID: list[0].ID}); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
