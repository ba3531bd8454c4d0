package services_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/models"
	"github.com/shashiranjanraj/boutique/app/repositories"
)

func matchesCustomer(q repositories.CustomerQuery, name, contact string) bool {
	if q.Name != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(strings.TrimSpace(q.Name))) {
		return false
	}
	if q.Contact != "" && contact != strings.TrimSpace(q.Contact) {
		return false
	}
	return true
}

type fakeOrders struct {
	mu       sync.Mutex
	byID     map[primitive.ObjectID]models.Order
	order    []primitive.ObjectID
	loseCAS  int // ReplaceIfVersion reports a lost race this many times
	casCalls int
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{byID: map[primitive.ObjectID]models.Order{}}
}

func (f *fakeOrders) Create(_ context.Context, o *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o.ID = primitive.NewObjectID()
	f.byID[o.ID] = *o
	f.order = append(f.order, o.ID)
	return nil
}

func (f *fakeOrders) List(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for i := len(f.order) - 1; i >= 0; i-- {
		if o := f.byID[f.order[i]]; o.User == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) Get(_ context.Context, userID, id primitive.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[id]
	if !ok || o.User != userID {
		return nil, repositories.ErrNotFound
	}
	return &o, nil
}

func (f *fakeOrders) FindByCustomer(_ context.Context, userID primitive.ObjectID, q repositories.CustomerQuery) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for _, id := range f.order {
		o := f.byID[id]
		if o.User == userID && matchesCustomer(q, o.CustomerName, o.CustomerContact) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (f *fakeOrders) FindByIDs(_ context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for _, id := range ids {
		if o, ok := f.byID[id]; ok && o.User == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) ReplaceIfVersion(_ context.Context, o *models.Order, expectedVersion int64, expectedAdvance float64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.casCalls++
	if f.loseCAS > 0 {
		f.loseCAS--
		return false, nil
	}
	cur, ok := f.byID[o.ID]
	if !ok || cur.User != o.User || cur.Version != expectedVersion || cur.AdvancePayment != expectedAdvance {
		return false, nil
	}
	o.Version = expectedVersion + 1
	f.byID[o.ID] = *o
	return true, nil
}

func (f *fakeOrders) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[id]
	if !ok || o.User != userID {
		return repositories.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeOrders) Stats(context.Context, primitive.ObjectID, repositories.DateRange) ([]repositories.Group, error) {
	return []repositories.Group{}, nil
}

type fakePayments struct {
	mu        sync.Mutex
	items     []models.Payment
	failWith  error
	statsRows []repositories.Group
}

func (f *fakePayments) Create(_ context.Context, p *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	p.ID = primitive.NewObjectID()
	f.items = append(f.items, *p)
	return nil
}

func (f *fakePayments) all() []models.Payment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Payment(nil), f.items...)
}

func (f *fakePayments) List(_ context.Context, userID primitive.ObjectID, _ repositories.PaymentFilter) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, p := range f.all() {
		if p.User == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayments) Get(_ context.Context, userID, id primitive.ObjectID) (*models.Payment, error) {
	for _, p := range f.all() {
		if p.ID == id && p.User == userID {
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePayments) FindByCustomer(_ context.Context, userID primitive.ObjectID, q repositories.CustomerQuery) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, p := range f.all() {
		if p.User == userID && matchesCustomer(q, p.CustomerName, p.CustomerContact) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayments) FindByOrders(_ context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) ([]models.Payment, error) {
	want := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []models.Payment{}
	for _, p := range f.all() {
		if p.User == userID && p.RelatedOrder != nil && want[*p.RelatedOrder] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayments) Update(_ context.Context, p *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == p.ID && f.items[i].User == p.User {
			f.items[i] = *p
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakePayments) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].User == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakePayments) Stats(context.Context, primitive.ObjectID, repositories.DateRange) ([]repositories.Group, error) {
	if f.statsRows == nil {
		return []repositories.Group{}, nil
	}
	return f.statsRows, nil
}

// fakeStats serves a fixed stats result for the report tests.
type fakeStats struct {
	rows []repositories.Group
	err  error
}

func (f fakeStats) Stats(context.Context, primitive.ObjectID, repositories.DateRange) ([]repositories.Group, error) {
	return f.rows, f.err
}

var errBoom = errors.New("boom")
