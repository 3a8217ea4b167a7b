package service

import (
	"context"

	"github.com/rajeshboldtribe/boldserve/internal/models"

	"github.com/google/uuid"
)

type subCategorySeed struct {
	Name        string
	Description string
	ImagePath   string
}

type categorySeed struct {
	Name          models.CategoryName
	Description   string
	ImagePath     string
	SubCategories []subCategorySeed
}

// defaultTaxonomy — фиксированная таксономия магазина.
var defaultTaxonomy = []categorySeed{
	{
		Name:        models.CategoryOfficeStationeries,
		Description: "Office supplies and stationery items",
		ImagePath:   "/images/categories/Office Stationaries.jpg",
		SubCategories: []subCategorySeed{
			{"Notebooks & Papers", "Notebooks, diaries and paper supplies", "/images/subcategories/office/notebooks.jpg"},
			{"Adhesive & Glue", "Glue sticks, tapes and adhesives", "/images/subcategories/office/Adhesive & Glue.jpg"},
			{"Pen & Pencil Kits", "Pens, pencils and writing kits", "/images/subcategories/office/penpencilekit.jpg"},
			{"Whitener & Markers", "Correction fluids, highlighters and markers", "/images/subcategories/office/whitenerandmarker.jpg"},
			{"Stapler & Scissors", "Staplers, punches and scissors", "/images/subcategories/office/staplerandSissor.jpg"},
			{"Calculator", "Basic and scientific calculators", "/images/subcategories/office/Calculator.jpg"},
		},
	},
	{
		Name:        models.CategoryPrintAndDemands,
		Description: "Printing services and related demands",
		ImagePath:   "/images/categories/Printing and Demands.jpg",
		SubCategories: []subCategorySeed{
			{"Business Cards", "Custom business card printing", "/images/subcategories/print/Business Cards.jpg"},
			{"Banners & Posters", "Large format banners and posters", "/images/subcategories/print/Banner.jpg"},
			{"Marketing Materials", "Flyers, brochures and promotional prints", "/images/subcategories/print/marker.jpg"},
			{"Printing Products", "Printed stationery and merchandise", "/images/subcategories/print/Printing and Demands.jpg"},
		},
	},
	{
		Name:        models.CategoryITServices,
		Description: "IT related services and repair work",
		ImagePath:   "/images/categories/itservices.jpg",
		SubCategories: []subCategorySeed{
			{"Computer & Laptop Repair", "Hardware diagnostics and repair", "/images/subcategories/it/computer-repair.jpg"},
			{"Software & OS Support", "Operating system and software installation", "/images/subcategories/it/software-support.jpg"},
			{"Server & Networking Solutions", "Network setup and server maintenance", "/images/subcategories/it/networking.jpg"},
			{"IT Security & Cybersecurity Solutions", "Antivirus, firewall and security audits", "/images/subcategories/it/security.jpg"},
			{"Upgradation & Hardware Enhancement", "RAM, storage and component upgrades", "/images/subcategories/it/hardware.jpg"},
			{"IT Consultation & AMC Services", "Consulting and annual maintenance contracts", "/images/subcategories/it/consultation.jpg"},
		},
	},
}

func seedFor(name models.CategoryName) (categorySeed, bool) {
	for _, s := range defaultTaxonomy {
		if s.Name == name {
			return s, true
		}
	}
	return categorySeed{}, false
}

type CreateCategoryInput struct {
	Name        string
	Description string
	ImagePath   string
}

type CreateSubCategoryInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description string
	ImagePath   string
}

type TaxonomyService interface {
	Bootstrap(ctx context.Context) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListSubCategories(ctx context.Context, categoryID uuid.UUID) ([]models.SubCategory, error)
	ListSubCategoriesBySlug(ctx context.Context, slug string) (*models.Category, []models.SubCategory, error)
	ListAllSubCategories(ctx context.Context) ([]models.SubCategory, error)
	CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error)
	CreateSubCategory(ctx context.Context, in CreateSubCategoryInput) (*models.SubCategory, error)
}
