package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type CategoryName string

const (
	CategoryOfficeStationeries CategoryName = "Office Stationeries"
	CategoryPrintAndDemands    CategoryName = "Print and Demands"
	CategoryITServices         CategoryName = "IT Services and Repair"
)

// CategoryNames: фиксированный набор категорий, порядок используется при выдаче.
var CategoryNames = []CategoryName{
	CategoryOfficeStationeries,
	CategoryPrintAndDemands,
	CategoryITServices,
}

func (n CategoryName) Valid() bool {
	for _, c := range CategoryNames {
		if c == n {
			return true
		}
	}
	return false
}

func (n CategoryName) Slug() string { return slug.Make(string(n)) }

type Category struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        CategoryName `gorm:"type:text;not null;uniqueIndex:ux_categories_name"`
	Slug        string       `gorm:"type:text;not null;uniqueIndex:ux_categories_slug"`
	Description string       `gorm:"type:text;not null;default:''"`
	ImagePath   string       `gorm:"type:text;not null;default:''"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Category) TableName() string { return "categories" }

// BeforeSave пересчитывает slug при каждом сохранении.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Slug = c.Name.Slug()
	return nil
}

type SubCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:text;not null"` // UNIQUE (category_id, lower(name)) в миграции
	Description string    `gorm:"type:text;not null;default:''"`
	ImagePath   string    `gorm:"type:text;not null;default:''"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Category *Category `gorm:"foreignKey:CategoryID"`
}

func (SubCategory) TableName() string { return "sub_categories" }
