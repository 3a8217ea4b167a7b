package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/migrate"
	"github.com/rajeshboldtribe/boldserve/internal/models"
	"github.com/rajeshboldtribe/boldserve/internal/repository"
	"github.com/rajeshboldtribe/boldserve/internal/service"
	"github.com/rajeshboldtribe/boldserve/pkg/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRepo(t *testing.T) *repository.Repository {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	require.NoError(t, migrate.MigrateDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()))
	return repository.New(db)
}

func TestBootstrapConcurrentSeeding(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	taxonomy := service.NewTaxonomyService(repo.Categories, zap.NewNop())

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- taxonomy.Bootstrap(ctx)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	cats, err := repo.Categories.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	slugs := map[string]bool{}
	for _, c := range cats {
		slugs[c.Slug] = true
	}
	assert.Len(t, slugs, 3)

	var dup int64
	require.NoError(t, repo.DB.Raw(`
SELECT count(*) FROM (
  SELECT category_id, lower(name) FROM sub_categories GROUP BY 1, 2 HAVING count(*) > 1
) d`).Scan(&dup).Error)
	assert.Zero(t, dup)
}

func TestServiceFilterIsExact(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, service.NewTaxonomyService(repo.Categories, zap.NewNop()).Bootstrap(ctx))

	cat, err := repo.Categories.GetCategoryByName(ctx, string(models.CategoryOfficeStationeries))
	require.NoError(t, err)
	require.NotNil(t, cat)
	subs, err := repo.Categories.ListSubCategories(ctx, cat.ID)
	require.NoError(t, err)
	require.NotEmpty(t, subs)

	require.NoError(t, repo.Services.Create(ctx, &models.Service{
		CategoryID:    cat.ID,
		SubCategoryID: subs[0].ID,
		ProductName:   "Desk calculator",
		Price:         decimal.RequireFromString("499.50"),
		Description:   "12-digit",
		ImagePath:     "/uploads/calc.png",
	}))

	got, err := repo.Services.List(ctx, repository.ServiceListFilter{Category: "office STATIONERIES"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Category)
	assert.Equal(t, models.CategoryOfficeStationeries, got[0].Category.Name)

	got, err = repo.Services.List(ctx, repository.ServiceListFilter{Category: "Office"})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.Services.List(ctx, repository.ServiceListFilter{SubCategory: subs[0].Name})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	missing, err := repo.Services.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestServiceUpdateAndDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, service.NewTaxonomyService(repo.Categories, zap.NewNop()).Bootstrap(ctx))

	cat, err := repo.Categories.GetCategoryByName(ctx, string(models.CategoryOfficeStationeries))
	require.NoError(t, err)
	subs, err := repo.Categories.ListSubCategories(ctx, cat.ID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(subs), 2)

	offers := "10% off"
	s := &models.Service{
		CategoryID:    cat.ID,
		SubCategoryID: subs[0].ID,
		ProductName:   "Stapler",
		Price:         decimal.RequireFromString("120"),
		Description:   "Heavy duty",
		Offers:        &offers,
		ImagePath:     "/uploads/stapler.png",
	}
	require.NoError(t, repo.Services.Create(ctx, s))

	price := decimal.RequireFromString("99.90")
	empty := ""
	require.NoError(t, repo.Services.Update(ctx, s.ID, repository.ServiceUpdate{
		SubCategoryID: &subs[1].ID,
		Price:         &price,
		Offers:        &empty,
	}))

	got, err := repo.Services.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Price.Equal(price))
	assert.Nil(t, got.Offers)
	assert.Equal(t, subs[1].Name, got.SubCategory.Name)
	assert.Equal(t, "Stapler", got.ProductName)

	// пустое обновление существующей строки не ошибка
	require.NoError(t, repo.Services.Update(ctx, s.ID, repository.ServiceUpdate{}))
	assert.True(t, errors.Is(repo.Services.Update(ctx, uuid.New(), repository.ServiceUpdate{Price: &price}), repository.ErrNotFound))
	assert.True(t, errors.Is(repo.Services.Update(ctx, uuid.New(), repository.ServiceUpdate{}), repository.ErrNotFound))

	require.NoError(t, repo.Services.Delete(ctx, s.ID))
	gone, err := repo.Services.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.True(t, errors.Is(repo.Services.Delete(ctx, s.ID), repository.ErrNotFound))
}

func TestOrderTransitionIsCompareAndSwap(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, service.NewTaxonomyService(repo.Categories, zap.NewNop()).Bootstrap(ctx))

	cats, err := repo.Categories.ListCategories(ctx)
	require.NoError(t, err)
	subs, err := repo.Categories.ListSubCategories(ctx, cats[0].ID)
	require.NoError(t, err)

	o := &models.Order{
		OrderNumber:   "BS-1",
		CategoryID:    cats[0].ID,
		SubCategoryID: subs[0].ID,
		Status:        models.OrderStatusPending,
		Customer:      models.CustomerDetails{Name: "Asha", Email: "asha@example.com"},
		Details:       models.OrderDetails{Quantity: 2, Price: decimal.NewFromInt(100)},
	}
	require.NoError(t, repo.Orders.Create(ctx, o))

	dup := *o
	dup.ID = uuid.Nil
	assert.True(t, errors.Is(repo.Orders.Create(ctx, &dup), repository.ErrDuplicate))

	pending := []models.OrderStatus{models.OrderStatusPending}
	ok, err := repo.Orders.TransitionStatus(ctx, o.ID, pending, models.OrderStatusAccepted)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Orders.TransitionStatus(ctx, o.ID, pending, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.Orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, stored.Status)
}

func TestPaymentTransitionAndFailStale(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	old := &models.Payment{
		OrderID:   "ORDER_1_old",
		Amount:    decimal.NewFromInt(500),
		Currency:  "INR",
		Status:    models.PaymentStatusPending,
		CreatedAt: time.Now().Add(-3 * time.Hour),
	}
	fresh := &models.Payment{
		OrderID:  "ORDER_2_fresh",
		Amount:   decimal.NewFromInt(250),
		Currency: "INR",
		Status:   models.PaymentStatusCreated,
	}
	require.NoError(t, repo.Payments.Create(ctx, old))
	require.NoError(t, repo.Payments.Create(ctx, fresh))
	assert.True(t, errors.Is(repo.Payments.Create(ctx, &models.Payment{
		OrderID: fresh.OrderID, Amount: decimal.NewFromInt(1), Currency: "INR",
	}), repository.ErrDuplicate))

	failed, err := repo.Payments.FailStale(ctx, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, old.OrderID, failed[0].OrderID)
	assert.Equal(t, models.PaymentStatusFailed, failed[0].Status)

	open := []models.PaymentStatus{models.PaymentStatusCreated, models.PaymentStatusPending}
	tracking := "TRK-1"
	ok, err := repo.Payments.Transition(ctx, fresh.OrderID, open, repository.PaymentUpdate{
		Status:     models.PaymentStatusCompleted,
		TrackingID: &tracking,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Payments.Transition(ctx, old.OrderID, open, repository.PaymentUpdate{Status: models.PaymentStatusCompleted})
	require.NoError(t, err)
	assert.False(t, ok, "terminal payment must not change")

	p, err := repo.Payments.GetByOrderID(ctx, fresh.OrderID)
	require.NoError(t, err)
	require.NotNil(t, p.TrackingID)
	assert.Equal(t, tracking, *p.TrackingID)

	status := models.PaymentStatusFailed
	list, total, err := repo.Payments.List(ctx, repository.PaymentListFilter{Status: &status})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, list, 1)
}

func TestUserEmailUniquenessIgnoresCase(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	u := &models.User{FullName: "Asha", Email: "asha@example.com", Mobile: "9876543210", Password: "x", Role: models.RoleCustomer}
	require.NoError(t, repo.Users.Create(ctx, u))

	err := repo.Users.Create(ctx, &models.User{FullName: "A", Email: "ASHA@example.com", Mobile: "9000000000", Password: "x", Role: models.RoleCustomer})
	assert.True(t, errors.Is(err, repository.ErrDuplicate))

	exists, err := repo.Users.ExistsByEmailExcept(ctx, "asha@example.com", u.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	bio := "hi"
	require.NoError(t, repo.Users.UpdateProfile(ctx, u.ID, repository.ProfileUpdate{Bio: &bio}))
	assert.True(t, errors.Is(repo.Users.UpdateProfile(ctx, uuid.New(), repository.ProfileUpdate{Bio: &bio}), repository.ErrNotFound))
}

func TestWithTxRollsBack(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	err := repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Payments.Create(ctx, &models.Payment{OrderID: "ORDER_tx", Amount: decimal.NewFromInt(10), Currency: "INR"}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	p, err := repo.Payments.GetByOrderID(ctx, "ORDER_tx")
	require.NoError(t, err)
	assert.Nil(t, p)
}
