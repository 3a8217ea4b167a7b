package service_test

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rajeshboldtribe/boldserve/internal/models"
	repo "github.com/rajeshboldtribe/boldserve/internal/repository"
	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/google/uuid"
)

// memCategoryRepo — таксономия в памяти с теми же уникальными ключами, что и в БД.
type memCategoryRepo struct {
	mu   sync.Mutex
	cats []models.Category
	subs []models.SubCategory
}

func (m *memCategoryRepo) EnsureCategories(_ context.Context, cats []models.Category) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range cats {
		if m.findByName(string(c.Name)) != nil {
			continue
		}
		c.ID = uuid.New()
		c.Slug = c.Name.Slug()
		m.cats = append(m.cats, c)
		n++
	}
	return n, nil
}

func (m *memCategoryRepo) findByName(name string) *models.Category {
	for i := range m.cats {
		if strings.EqualFold(string(m.cats[i].Name), name) {
			return &m.cats[i]
		}
	}
	return nil
}

func (m *memCategoryRepo) CountCategories(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.cats)), nil
}

func (m *memCategoryRepo) ListCategories(context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Category(nil), m.cats...), nil
}

func (m *memCategoryRepo) CreateCategory(_ context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findByName(string(c.Name)) != nil {
		return repo.ErrDuplicate
	}
	c.ID = uuid.New()
	c.Slug = c.Name.Slug()
	m.cats = append(m.cats, *c)
	return nil
}

func (m *memCategoryRepo) GetCategoryByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cats {
		if m.cats[i].ID == id {
			c := m.cats[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memCategoryRepo) GetCategoryByName(_ context.Context, name string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c := m.findByName(name); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *memCategoryRepo) GetCategoryBySlug(_ context.Context, slug string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cats {
		if m.cats[i].Slug == slug {
			c := m.cats[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memCategoryRepo) subIndex(categoryID uuid.UUID, name string) int {
	for i := range m.subs {
		if m.subs[i].CategoryID == categoryID && strings.EqualFold(m.subs[i].Name, name) {
			return i
		}
	}
	return -1
}

func (m *memCategoryRepo) EnsureSubCategories(_ context.Context, subs []models.SubCategory) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, s := range subs {
		if m.subIndex(s.CategoryID, s.Name) >= 0 {
			continue
		}
		s.ID = uuid.New()
		m.subs = append(m.subs, s)
		n++
	}
	return n, nil
}

func (m *memCategoryRepo) CreateSubCategory(_ context.Context, s *models.SubCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subIndex(s.CategoryID, s.Name) >= 0 {
		return repo.ErrDuplicate
	}
	s.ID = uuid.New()
	m.subs = append(m.subs, *s)
	return nil
}

func (m *memCategoryRepo) CountSubCategories(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	subs, _ := m.ListSubCategories(ctx, categoryID)
	return int64(len(subs)), nil
}

func (m *memCategoryRepo) ListSubCategories(_ context.Context, categoryID uuid.UUID) ([]models.SubCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SubCategory
	for _, s := range m.subs {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memCategoryRepo) ListAllSubCategories(context.Context) ([]models.SubCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.SubCategory(nil), m.subs...), nil
}

func (m *memCategoryRepo) GetSubCategoryByID(_ context.Context, id uuid.UUID) (*models.SubCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.subs {
		if m.subs[i].ID == id {
			s := m.subs[i]
			for j := range m.cats {
				if m.cats[j].ID == s.CategoryID {
					c := m.cats[j]
					s.Category = &c
				}
			}
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memCategoryRepo) GetSubCategoryByName(_ context.Context, categoryID uuid.UUID, name string) (*models.SubCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.subIndex(categoryID, name); i >= 0 {
		s := m.subs[i]
		return &s, nil
	}
	return nil, nil
}

// MockServiceRepo
type MockServiceRepo struct {
	CreateFunc  func(ctx context.Context, s *models.Service) error
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*models.Service, error)
	ListFunc    func(ctx context.Context, f repo.ServiceListFilter) ([]models.Service, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, u repo.ServiceUpdate) error
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *MockServiceRepo) Create(ctx context.Context, s *models.Service) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	s.ID = uuid.New()
	return nil
}

func (m *MockServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockServiceRepo) List(ctx context.Context, f repo.ServiceListFilter) ([]models.Service, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return []models.Service{}, nil
}

func (m *MockServiceRepo) Update(ctx context.Context, id uuid.UUID, u repo.ServiceUpdate) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, u)
	}
	return nil
}

func (m *MockServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// memOrderRepo повторяет условное UPDATE ... WHERE status IN (...).
type memOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*models.Order
}

func newMemOrderRepo() *memOrderRepo { return &memOrderRepo{orders: map[uuid.UUID]*models.Order{}} }

func (m *memOrderRepo) Create(_ context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.orders {
		if existing.OrderNumber == o.OrderNumber {
			return repo.ErrDuplicate
		}
	}
	o.ID = uuid.New()
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *memOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderRepo) List(_ context.Context, f repo.OrderListFilter) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.orders {
		if f.Status == nil || o.Status == *f.Status {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memOrderRepo) TransitionStatus(_ context.Context, id uuid.UUID, from []models.OrderStatus, to models.OrderStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if o.Status == f {
			o.Status = to
			return true, nil
		}
	}
	return false, nil
}

type memPaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*models.Payment
}

func newMemPaymentRepo() *memPaymentRepo { return &memPaymentRepo{payments: map[string]*models.Payment{}} }

func (m *memPaymentRepo) Create(_ context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payments[p.OrderID]; ok {
		return repo.ErrDuplicate
	}
	p.ID = uuid.New()
	cp := *p
	m.payments[p.OrderID] = &cp
	return nil
}

func (m *memPaymentRepo) GetByOrderID(_ context.Context, orderID string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[orderID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memPaymentRepo) List(_ context.Context, f repo.PaymentListFilter) ([]models.Payment, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Payment
	for _, p := range m.payments {
		if f.Status == nil || p.Status == *f.Status {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memPaymentRepo) Transition(_ context.Context, orderID string, from []models.PaymentStatus, upd repo.PaymentUpdate) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[orderID]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if p.Status == f {
			p.Status = upd.Status
			if upd.TrackingID != nil {
				p.TrackingID = upd.TrackingID
			}
			if upd.BankRefNo != nil {
				p.BankRefNo = upd.BankRefNo
			}
			if upd.PaymentMode != nil {
				p.PaymentMode = upd.PaymentMode
			}
			return true, nil
		}
	}
	return false, nil
}

func (m *memPaymentRepo) status(orderID string) models.PaymentStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payments[orderID].Status
}

// MockUserRepo
type MockUserRepo struct {
	CreateFunc              func(ctx context.Context, u *models.User) error
	GetByEmailFunc          func(ctx context.Context, email string) (*models.User, error)
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListFunc                func(ctx context.Context) ([]models.User, error)
	ExistsByEmailFunc       func(ctx context.Context, email string) (bool, error)
	ExistsByEmailExceptFunc func(ctx context.Context, email string, id uuid.UUID) (bool, error)
	ExistsByMobileFunc      func(ctx context.Context, mobile string) (bool, error)
	UpdateProfileFunc       func(ctx context.Context, id uuid.UUID, p repo.ProfileUpdate) error
	UpdateProfileImageFunc  func(ctx context.Context, id uuid.UUID, path string) error
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) List(ctx context.Context) ([]models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepo) ExistsByEmailExcept(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	if m.ExistsByEmailExceptFunc != nil {
		return m.ExistsByEmailExceptFunc(ctx, email, id)
	}
	return false, nil
}

func (m *MockUserRepo) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	if m.ExistsByMobileFunc != nil {
		return m.ExistsByMobileFunc(ctx, mobile)
	}
	return false, nil
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, p repo.ProfileUpdate) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, p)
	}
	return nil
}

func (m *MockUserRepo) UpdateProfileImage(ctx context.Context, id uuid.UUID, path string) error {
	if m.UpdateProfileImageFunc != nil {
		return m.UpdateProfileImageFunc(ctx, id, path)
	}
	return nil
}

// memBlacklist
type memBlacklist struct {
	mu   sync.Mutex
	jtis map[string]time.Duration
	err  error
}

func (b *memBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.jtis == nil {
		b.jtis = map[string]time.Duration{}
	}
	b.jtis[jti] = ttl
	return nil
}

func (b *memBlacklist) IsTokenBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return false, b.err
	}
	_, ok := b.jtis[jti]
	return ok, nil
}

// fakeImages запоминает сохранённые и удалённые пути.
type fakeImages struct {
	saveErr error
	saved   []string
	removed []string
}

func (f *fakeImages) Save(_ context.Context, img *service.ImageUpload) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	if _, err := io.Copy(io.Discard, img.Content); err != nil {
		return "", err
	}
	p := "/uploads/" + uuid.NewString() + ".png"
	f.saved = append(f.saved, p)
	return p, nil
}

func (f *fakeImages) Remove(path string) error {
	f.removed = append(f.removed, path)
	return nil
}

// recordingBus
type recordingBus struct {
	mu       sync.Mutex
	created  []service.OrderCreatedEvent
	changed  []service.OrderStatusChangedEvent
	payments []service.PaymentUpdatedEvent
	err      error
}

func (b *recordingBus) PublishOrderCreated(_ context.Context, e service.OrderCreatedEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = append(b.created, e)
	return b.err
}

func (b *recordingBus) PublishOrderStatusChanged(_ context.Context, e service.OrderStatusChangedEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.changed = append(b.changed, e)
	return b.err
}

func (b *recordingBus) PublishPaymentUpdated(_ context.Context, e service.PaymentUpdatedEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.payments = append(b.payments, e)
	return b.err
}

var errBoom = errors.New("boom")
