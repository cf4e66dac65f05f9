package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"orchard_back_end/internal/apperrors"
	"orchard_back_end/internal/models"
	"orchard_back_end/internal/repository"
)

type fakeOrderStore struct {
	orders    map[primitive.ObjectID]*models.Order
	insertErr error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[primitive.ObjectID]*models.Order{}}
}

func (f *fakeOrderStore) Insert(ctx context.Context, order *models.Order) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	clone := *order
	f.orders[order.ID] = &clone
	return nil
}

func (f *fakeOrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (f *fakeOrderStore) Find(ctx context.Context, filter repository.OrderFilter) ([]models.Order, int64, error) {
	var all []models.Order
	for _, order := range f.orders {
		if filter.User != nil && order.User != *filter.User {
			continue
		}
		all = append(all, *order)
	}
	total := int64(len(all))
	start := (filter.Page - 1) * filter.PerPage
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.PerPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeOrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	order.Status = status
	clone := *order
	return &clone, nil
}

func (f *fakeOrderStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(f.orders, id)
	return order, nil
}

type stockStore struct {
	products map[primitive.ObjectID]*models.Product
}

func newStockStore(products ...*models.Product) *stockStore {
	s := &stockStore{products: map[primitive.ObjectID]*models.Product{}}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *stockStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stockStore) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	p, ok := s.products[id]
	if !ok || p.CountInStock < quantity {
		return false, nil
	}
	p.CountInStock -= quantity
	return true, nil
}

func (s *stockStore) IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	p, ok := s.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.CountInStock += quantity
	return nil
}

func (s *stockStore) totalStock() int {
	total := 0
	for _, p := range s.products {
		total += p.CountInStock
	}
	return total
}

type fakeOrderUsers struct {
	users map[primitive.ObjectID]*models.User
}

func (f *fakeOrderUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func testProduct(title string, price float64, stock int) *models.Product {
	return &models.Product{
		ID:           primitive.NewObjectID(),
		Title:        title,
		Price:        price,
		CountInStock: stock,
		Images:       []string{"https://img.example/" + title + ".png"},
	}
}

func newOrderService(orders *fakeOrderStore, products *stockStore) *OrderService {
	return NewOrderService(orders, products, nil, nil, nil)
}

func TestCreateOrderSnapshotsPricesAndDecrementsStock(t *testing.T) {
	apple := testProduct("apple", 2.5, 10)
	pear := testProduct("pear", 4, 3)
	products := newStockStore(apple, pear)
	orders := newFakeOrderStore()
	svc := newOrderService(orders, products)
	userID := primitive.NewObjectID()

	order, err := svc.Create(context.Background(), userID, []models.OrderItemInput{
		{Product: apple.ID.Hex(), Quantity: 4},
		{Product: pear.ID.Hex(), Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, userID, order.User)
	assert.InDelta(t, 2.5*4+4*2, order.TotalPrice, 1e-9)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2.5, order.Items[0].Price)
	assert.Equal(t, 4.0, order.Items[1].Price)

	assert.Equal(t, 6, products.products[apple.ID].CountInStock)
	assert.Equal(t, 1, products.products[pear.ID].CountInStock)

	// a later price change must not touch the stored snapshot
	products.products[apple.ID].Price = 99
	stored, err := svc.GetByID(context.Background(), order.ID.Hex(), userID, false)
	require.NoError(t, err)
	assert.Equal(t, 2.5, stored.Items[0].Price)
}

func TestCreateOrderRejectsEmptyAndInvalidItems(t *testing.T) {
	apple := testProduct("apple", 2, 10)
	svc := newOrderService(newFakeOrderStore(), newStockStore(apple))
	userID := primitive.NewObjectID()

	_, err := svc.Create(context.Background(), userID, nil)
	assert.ErrorIs(t, err, apperrors.ErrOrderNoItems)

	_, err = svc.Create(context.Background(), userID, []models.OrderItemInput{
		{Product: "not-an-id", Quantity: 1},
	})
	assert.ErrorIs(t, err, apperrors.ErrOrderInvalidItems)

	_, err = svc.Create(context.Background(), userID, []models.OrderItemInput{
		{Product: apple.ID.Hex(), Quantity: 0},
	})
	assert.ErrorIs(t, err, apperrors.ErrOrderInvalidQuantity)

	_, err = svc.Create(context.Background(), userID, []models.OrderItemInput{
		{Product: apple.ID.Hex(), Quantity: 101},
	})
	assert.ErrorIs(t, err, apperrors.ErrOrderInvalidQuantity)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	apple := testProduct("apple", 2, 10)
	products := newStockStore(apple)
	svc := newOrderService(newFakeOrderStore(), products)

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), []models.OrderItemInput{
		{Product: apple.ID.Hex(), Quantity: 1},
		{Product: primitive.NewObjectID().Hex(), Quantity: 1},
	})
	assert.ErrorIs(t, err, apperrors.ErrOrderProductsNotFound)
	assert.Equal(t, 10, products.products[apple.ID].CountInStock)
}

func TestCreateOrderOutOfStockRollsBackEarlierDecrements(t *testing.T) {
	apple := testProduct("apple", 2, 10)
	pear := testProduct("pear", 3, 1)
	products := newStockStore(apple, pear)
	svc := newOrderService(newFakeOrderStore(), products)

	before := products.totalStock()
	_, err := svc.Create(context.Background(), primitive.NewObjectID(), []models.OrderItemInput{
		{Product: apple.ID.Hex(), Quantity: 5},
		{Product: pear.ID.Hex(), Quantity: 2},
	})
	assert.ErrorIs(t, err, apperrors.ErrOrderOutOfStock)

	assert.Equal(t, before, products.totalStock())
	assert.Equal(t, 10, products.products[apple.ID].CountInStock)
	assert.Equal(t, 1, products.products[pear.ID].CountInStock)
}

func TestCreateOrderInsertFailureRestoresStock(t *testing.T) {
	apple := testProduct("apple", 2, 10)
	products := newStockStore(apple)
	orders := newFakeOrderStore()
	orders.insertErr = errors.New("write failed")
	svc := newOrderService(orders, products)

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), []models.OrderItemInput{
		{Product: apple.ID.Hex(), Quantity: 3},
	})
	require.Error(t, err)
	assert.Equal(t, 10, products.products[apple.ID].CountInStock)
}

func TestListOrdersScopedToOwnerUnlessAdmin(t *testing.T) {
	apple := testProduct("apple", 2, 100)
	products := newStockStore(apple)
	orders := newFakeOrderStore()
	svc := newOrderService(orders, products)

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	for _, user := range []primitive.ObjectID{alice, alice, bob} {
		_, err := svc.Create(context.Background(), user, []models.OrderItemInput{
			{Product: apple.ID.Hex(), Quantity: 1},
		})
		require.NoError(t, err)
	}

	mine, pagination, err := svc.List(context.Background(), alice, false, ListOrdersParams{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.Equal(t, int64(2), pagination.TotalCount)
	assert.Equal(t, 1, pagination.CurrentPage)
	assert.Equal(t, 5, pagination.PerPage)

	all, pagination, err := svc.List(context.Background(), alice, true, ListOrdersParams{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, int64(3), pagination.TotalCount)
}

func TestGetOrderAuthorization(t *testing.T) {
	apple := testProduct("apple", 2, 10)
	svc := newOrderService(newFakeOrderStore(), newStockStore(apple))
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	order, err := svc.Create(context.Background(), owner, []models.OrderItemInput{
		{Product: apple.ID.Hex(), Quantity: 1},
	})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), order.ID.Hex(), stranger, false)
	assert.ErrorIs(t, err, apperrors.ErrOrderUnauthorizedView)

	got, err := svc.GetByID(context.Background(), order.ID.Hex(), stranger, true)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = svc.GetByID(context.Background(), primitive.NewObjectID().Hex(), owner, false)
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
}

func TestCancelRestoresStockAndGatesOnStatus(t *testing.T) {
	apple := testProduct("apple", 2, 10)
	products := newStockStore(apple)
	orders := newFakeOrderStore()
	svc := newOrderService(orders, products)
	owner := primitive.NewObjectID()

	order, err := svc.Create(context.Background(), owner, []models.OrderItemInput{
		{Product: apple.ID.Hex(), Quantity: 4},
	})
	require.NoError(t, err)
	require.Equal(t, 6, products.products[apple.ID].CountInStock)

	cancelled, err := svc.Cancel(context.Background(), order.ID.Hex(), owner)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, 10, products.products[apple.ID].CountInStock)

	// cancelling twice must not restore stock twice
	_, err = svc.Cancel(context.Background(), order.ID.Hex(), owner)
	assert.ErrorIs(t, err, apperrors.ErrOrderCannotCancel)
	assert.Equal(t, 10, products.products[apple.ID].CountInStock)
}

func TestCancelRejectsNonOwnerAndShippedOrders(t *testing.T) {
	apple := testProduct("apple", 2, 10)
	products := newStockStore(apple)
	orders := newFakeOrderStore()
	svc := newOrderService(orders, products)
	owner := primitive.NewObjectID()

	order, err := svc.Create(context.Background(), owner, []models.OrderItemInput{
		{Product: apple.ID.Hex(), Quantity: 1},
	})
	require.NoError(t, err)

	// admins change status or delete; they do not use the cancel path
	_, err = svc.Cancel(context.Background(), order.ID.Hex(), primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrOrderUnauthorizedCancel)

	_, err = svc.UpdateStatus(context.Background(), order.ID.Hex(), models.StatusShipped)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), order.ID.Hex(), owner)
	assert.ErrorIs(t, err, apperrors.ErrOrderCannotCancel)
	assert.Equal(t, 9, products.products[apple.ID].CountInStock)
}

func TestUpdateStatusValidatesMembership(t *testing.T) {
	apple := testProduct("apple", 2, 10)
	svc := newOrderService(newFakeOrderStore(), newStockStore(apple))
	owner := primitive.NewObjectID()

	order, err := svc.Create(context.Background(), owner, []models.OrderItemInput{
		{Product: apple.ID.Hex(), Quantity: 1},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID.Hex(), "teleported")
	assert.ErrorIs(t, err, apperrors.ErrOrderInvalidStatus)

	updated, err := svc.UpdateStatus(context.Background(), order.ID.Hex(), models.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, updated.Status)
}

func TestDeleteOrderLeavesStockAlone(t *testing.T) {
	apple := testProduct("apple", 2, 10)
	products := newStockStore(apple)
	svc := newOrderService(newFakeOrderStore(), products)
	owner := primitive.NewObjectID()

	order, err := svc.Create(context.Background(), owner, []models.OrderItemInput{
		{Product: apple.ID.Hex(), Quantity: 2},
	})
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 8, products.products[apple.ID].CountInStock)

	_, err = svc.Delete(context.Background(), order.ID.Hex())
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
}

func TestOrderEnrichmentFillsDisplayFields(t *testing.T) {
	apple := testProduct("apple", 2, 10)
	products := newStockStore(apple)
	owner := primitive.NewObjectID()
	users := &fakeOrderUsers{users: map[primitive.ObjectID]*models.User{
		owner: {ID: owner, UserName: "alice", Email: "alice@example.com"},
	}}
	svc := NewOrderService(newFakeOrderStore(), products, users, nil, nil)

	order, err := svc.Create(context.Background(), owner, []models.OrderItemInput{
		{Product: apple.ID.Hex(), Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", order.UserName)
	assert.Equal(t, "alice@example.com", order.UserEmail)
	assert.Equal(t, "apple", order.Items[0].ProductTitle)
	assert.Equal(t, "https://img.example/apple.png", order.Items[0].ProductImage)
}
