package sqldb

import (
	"context"
	"strings"

	"tattoo-studio-api/internal/models"
	"tattoo-studio-api/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const orderColumns = `id, user_id, service_type, description, status, price, payment_method, created_at, updated_at`

const orderDetailsQuery = `
	SELECT o.id, o.user_id, o.service_type, o.description, o.status, o.price, o.payment_method,
		   o.created_at, o.updated_at, u.name AS client_name, u.email AS client_email
	FROM orders o
	JOIN users u ON o.user_id = u.id`

// OrderRepository implements repositories.OrderRepository
type OrderRepository struct {
	baseRepository
}

// NewOrderRepository creates an order repository bound to ext
func NewOrderRepository(ext sqlx.ExtContext, logger *logrus.Logger) repositories.OrderRepository {
	return &OrderRepository{baseRepository: newBaseRepository(ext, "order", logger)}
}

// Create inserts an order and reloads it to pick up database defaults
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}

	id, err := r.insert(ctx, "create", `
		INSERT INTO orders (user_id, service_type, description, status, price, payment_method)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		order.UserID,
		order.ServiceType,
		order.Description,
		order.Status,
		order.Price,
		order.PaymentMethod,
	)
	if err != nil {
		return err
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	*order = *created
	return nil
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}
	err := r.get(ctx, "get_by_id", order, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	if err != nil {
		return nil, r.notFound(err, "get_by_id", id)
	}
	return order, nil
}

// GetDetails retrieves an order joined with its client
func (r *OrderRepository) GetDetails(ctx context.Context, id int64) (*models.OrderDetails, error) {
	order := &models.OrderDetails{}
	err := r.get(ctx, "get_details", order, orderDetailsQuery+` WHERE o.id = ?`, id)
	if err != nil {
		return nil, r.notFound(err, "get_details", id)
	}
	return order, nil
}

// List retrieves orders joined with their clients, newest first
func (r *OrderRepository) List(ctx context.Context, filters repositories.OrderFilters) ([]*models.OrderDetails, error) {
	query := orderDetailsQuery
	var args []interface{}

	if filters.UserID != nil {
		query += ` WHERE o.user_id = ?`
		args = append(args, *filters.UserID)
	}
	query += ` ORDER BY o.created_at DESC, o.id DESC`

	orders := []*models.OrderDetails{}
	if err := r.selectRows(ctx, "list", &orders, query, args...); err != nil {
		return nil, err
	}
	return orders, nil
}

// Update applies the non-nil changes and refreshes updated_at
func (r *OrderRepository) Update(ctx context.Context, id int64, changes models.OrderChanges) (*models.Order, error) {
	var sets []string
	var args []interface{}

	if changes.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *changes.Status)
	}
	if changes.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *changes.Price)
	}
	if changes.PaymentMethod != nil {
		sets = append(sets, "payment_method = ?")
		args = append(args, *changes.PaymentMethod)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	result, err := r.exec(ctx, "update", `UPDATE orders SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, err
	}

	if err := r.checkRowsAffected(result, "update", id); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// MarkDiscussing moves a pending order to discussing
func (r *OrderRepository) MarkDiscussing(ctx context.Context, id int64) (bool, error) {
	result, err := r.exec(ctx, "mark_discussing", `
		UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?`,
		models.OrderStatusDiscussing, id, models.OrderStatusPending)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, repositories.NewRepositoryError("mark_discussing", r.entity, id, err)
	}
	return affected > 0, nil
}
