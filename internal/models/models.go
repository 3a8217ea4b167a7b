package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Каталожная позиция (услуга или товар) — ссылается на таксономию, а не хранит названия строками.
type Service struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index:ix_services_taxonomy,priority:1"`
	SubCategoryID uuid.UUID       `gorm:"type:uuid;not null;index:ix_services_taxonomy,priority:2"`
	ProductName   string          `gorm:"type:text;not null"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null"` // CHECK >= 0 в миграции
	Description   string          `gorm:"type:text;not null"`
	Offers        *string         `gorm:"type:text"`
	Review        *string         `gorm:"type:text"`
	Rating        float64         `gorm:"type:numeric(2,1);not null;default:0"` // CHECK 0..5
	ImagePath     string          `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Category    *Category    `gorm:"foreignKey:CategoryID"`
	SubCategory *SubCategory `gorm:"foreignKey:SubCategoryID"`
}

func (Service) TableName() string { return "services" }

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusAccepted || s == OrderStatusCancelled
}

type CustomerDetails struct {
	Name    string `gorm:"type:text;not null"`
	Email   string `gorm:"type:text;not null"`
	Phone   string `gorm:"type:text;not null;default:''"`
	Address string `gorm:"type:text;not null;default:''"`
}

type OrderDetails struct {
	Description string          `gorm:"type:text;not null;default:''"`
	Quantity    int             `gorm:"type:int;not null"` // CHECK > 0
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber   string          `gorm:"type:text;not null;uniqueIndex:ux_orders_number"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SubCategoryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status        OrderStatus     `gorm:"type:text;not null;default:'pending'"`
	Customer      CustomerDetails `gorm:"embedded;embeddedPrefix:customer_"`
	Details       OrderDetails    `gorm:"embedded;embeddedPrefix:order_"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Category    *Category    `gorm:"foreignKey:CategoryID"`
	SubCategory *SubCategory `gorm:"foreignKey:SubCategoryID"`
}

func (Order) TableName() string { return "orders" }

type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "created"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusCreated, PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}

// Payment — попытка оплаты через шлюз. OrderID — идентификатор для шлюза (ORDER_<ts>_<rand>),
// а не ссылка на Order.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID       string          `gorm:"type:text;not null;uniqueIndex:ux_payments_order_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency      string          `gorm:"type:char(3);not null;default:'INR'"`
	Status        PaymentStatus   `gorm:"type:text;not null;default:'created'"`
	TrackingID    *string         `gorm:"type:text"`
	BankRefNo     *string         `gorm:"type:text"`
	PaymentMode   *string         `gorm:"type:text"`
	CustomerName  string          `gorm:"type:text;not null"`
	CustomerEmail string          `gorm:"type:text;not null"`
	CustomerPhone string          `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Payment) TableName() string { return "payments" }

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FullName     string    `gorm:"type:text;not null"`
	Email        string    `gorm:"type:text;not null"` // уникальность по lower(email) — в миграции
	Mobile       string    `gorm:"type:text;not null;uniqueIndex:ux_users_mobile"`
	Password     string    `gorm:"type:text;not null"`
	Address      *string   `gorm:"type:text"`
	Bio          *string   `gorm:"type:text"`
	ProfileImage *string   `gorm:"type:text"`
	Role         Role      `gorm:"type:text;not null;default:'customer'"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (User) TableName() string { return "users" }
