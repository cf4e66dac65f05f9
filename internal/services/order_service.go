package services

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"orchard_back_end/internal/apperrors"
	"orchard_back_end/internal/models"
	"orchard_back_end/internal/repository"
)

const maxOrderItemQuantity = 100

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Find(ctx context.Context, filter repository.OrderFilter) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
}

// OrderProductStore is the slice of the product store the order flow needs:
// batch lookups plus the conditional stock mutations.
type OrderProductStore interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
}

// OrderUserFinder resolves the buyer for display enrichment.
type OrderUserFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// OrderNotifier pushes order lifecycle events to subscribers. Nil disables it.
type OrderNotifier interface {
	OrderCreated(order models.Order)
	OrderStatusChanged(order models.Order)
}

// OrderMailer sends order lifecycle mail. Nil disables it.
type OrderMailer interface {
	SendOrderConfirmation(user models.User, order models.Order)
	SendOrderCancellation(user models.User, order models.Order)
}

type ListOrdersParams struct {
	StatusSearch string
	Page         int
	PerPage      int
}

type OrderService struct {
	orders   OrderStore
	products OrderProductStore
	users    OrderUserFinder
	notifier OrderNotifier
	mailer   OrderMailer
}

func NewOrderService(orders OrderStore, products OrderProductStore, users OrderUserFinder, notifier OrderNotifier, mailer OrderMailer) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		users:    users,
		notifier: notifier,
		mailer:   mailer,
	}
}

// Create places an order for the given user. Stock is reserved item by item
// with conditional decrements so concurrent orders can never oversell; on any
// failure the decrements already taken are handed back.
func (s *OrderService) Create(ctx context.Context, userID primitive.ObjectID, items []models.OrderItemInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, apperrors.ErrOrderNoItems
	}

	ids := make([]primitive.ObjectID, 0, len(items))
	quantities := make(map[primitive.ObjectID]int, len(items))
	for _, item := range items {
		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			return nil, apperrors.ErrOrderInvalidItems
		}
		if item.Quantity < 1 || item.Quantity > maxOrderItemQuantity {
			return nil, apperrors.ErrOrderInvalidQuantity
		}
		if _, dup := quantities[productID]; dup {
			return nil, apperrors.ErrOrderInvalidItems
		}
		ids = append(ids, productID)
		quantities[productID] = item.Quantity
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(products) != len(ids) {
		return nil, apperrors.ErrOrderProductsNotFound
	}
	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	reserved := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		ok, err := s.products.DecrementStock(ctx, id, quantities[id])
		if err != nil || !ok {
			s.releaseStock(reserved, quantities)
			if err != nil {
				return nil, err
			}
			return nil, apperrors.ErrOrderOutOfStock
		}
		reserved = append(reserved, id)
	}

	order := &models.Order{
		User:   userID,
		Status: models.StatusPending,
	}
	for _, id := range ids {
		product := byID[id]
		quantity := quantities[id]
		order.Items = append(order.Items, models.OrderItem{
			Product:  id,
			Quantity: quantity,
			Price:    product.Price,
		})
		order.TotalPrice += product.Price * float64(quantity)
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.releaseStock(reserved, quantities)
		return nil, err
	}

	s.enrich(ctx, order)
	s.afterCreate(ctx, *order)
	return order, nil
}

// releaseStock hands reserved quantities back. Failures are logged, not
// returned: the caller is already on an error path.
func (s *OrderService) releaseStock(ids []primitive.ObjectID, quantities map[primitive.ObjectID]int) {
	ctx := context.Background()
	for _, id := range ids {
		if err := s.products.IncrementStock(ctx, id, quantities[id]); err != nil {
			log.Printf("⚠️ Failed to restore stock for product %s: %v", id.Hex(), err)
		}
	}
}

func (s *OrderService) afterCreate(ctx context.Context, order models.Order) {
	if s.notifier != nil {
		go s.notifier.OrderCreated(order)
	}
	if s.mailer != nil && s.users != nil {
		if user, err := s.users.FindByID(ctx, order.User); err == nil {
			go s.mailer.SendOrderConfirmation(*user, order)
		}
	}
}

// List returns the caller's orders, or every order when the caller is an
// admin. StatusSearch filters by partial status match.
func (s *OrderService) List(ctx context.Context, userID primitive.ObjectID, isAdmin bool, params ListOrdersParams) ([]models.Order, models.Pagination, error) {
	page := params.Page
	if page < 1 {
		page = defaultPage
	}
	perPage := params.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}

	filter := repository.OrderFilter{
		StatusSearch: params.StatusSearch,
		Page:         page,
		PerPage:      perPage,
	}
	if !isAdmin {
		filter.User = &userID
	}

	orders, total, err := s.orders.Find(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	for i := range orders {
		s.enrich(ctx, &orders[i])
	}
	return orders, models.NewPagination(total, page, perPage), nil
}

// GetByID returns the order when the caller owns it or is an admin.
func (s *OrderService) GetByID(ctx context.Context, id string, userID primitive.ObjectID, isAdmin bool) (*models.Order, error) {
	order, err := s.findByHex(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.User != userID {
		return nil, apperrors.ErrOrderUnauthorizedView
	}
	s.enrich(ctx, order)
	return order, nil
}

// UpdateStatus sets an order to any valid status. Admin only; the boundary
// enforces the role, the service enforces status validity.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, apperrors.InvalidStatus(models.OrderStatusList())
	}

	order, err := s.findByHex(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.orders.UpdateStatus(ctx, order.ID, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	s.enrich(ctx, updated)
	if s.notifier != nil {
		go s.notifier.OrderStatusChanged(*updated)
	}
	return updated, nil
}

// Cancel sets the caller's own order to cancelled and hands the stock back.
// Only the owner may cancel, and only before the order has shipped.
func (s *OrderService) Cancel(ctx context.Context, id string, userID primitive.ObjectID) (*models.Order, error) {
	order, err := s.findByHex(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.User != userID {
		return nil, apperrors.ErrOrderUnauthorizedCancel
	}
	switch order.Status {
	case models.StatusShipped, models.StatusDelivered, models.StatusCancelled:
		return nil, apperrors.CannotCancel(order.Status)
	}

	updated, err := s.orders.UpdateStatus(ctx, order.ID, models.StatusCancelled)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	for _, item := range updated.Items {
		if err := s.products.IncrementStock(ctx, item.Product, item.Quantity); err != nil {
			log.Printf("⚠️ Failed to restore stock for product %s: %v", item.Product.Hex(), err)
		}
	}

	s.enrich(ctx, updated)
	if s.notifier != nil {
		go s.notifier.OrderStatusChanged(*updated)
	}
	if s.mailer != nil && s.users != nil {
		if user, err := s.users.FindByID(ctx, updated.User); err == nil {
			go s.mailer.SendOrderCancellation(*user, *updated)
		}
	}
	return updated, nil
}

// Delete removes an order outright without touching stock. Admin only.
func (s *OrderService) Delete(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.findByHex(ctx, id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.orders.Delete(ctx, order.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *OrderService) findByHex(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrOrderNotFound
	}
	order, err := s.orders.FindByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// enrich fills the display-only fields: buyer identity and per-item product
// title and image. Lookups are best effort.
func (s *OrderService) enrich(ctx context.Context, order *models.Order) {
	if s.users != nil {
		if user, err := s.users.FindByID(ctx, order.User); err == nil {
			order.UserName = user.UserName
			order.UserEmail = user.Email
		}
	}

	if len(order.Items) == 0 {
		return
	}
	ids := make([]primitive.ObjectID, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.Product)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return
	}
	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for i := range order.Items {
		if p, ok := byID[order.Items[i].Product]; ok {
			order.Items[i].ProductTitle = p.Title
			if len(p.Images) > 0 {
				order.Items[i].ProductImage = p.Images[0]
			}
		}
	}
}
