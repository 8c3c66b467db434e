package sqldb

import (
	"context"

	"tattoo-studio-api/internal/models"
	"tattoo-studio-api/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// OrderMessageRepository implements repositories.OrderMessageRepository
type OrderMessageRepository struct {
	baseRepository
}

// NewOrderMessageRepository creates an order message repository bound to ext
func NewOrderMessageRepository(ext sqlx.ExtContext, logger *logrus.Logger) repositories.OrderMessageRepository {
	return &OrderMessageRepository{baseRepository: newBaseRepository(ext, "order_message", logger)}
}

// Create appends a message to the order thread
func (r *OrderMessageRepository) Create(ctx context.Context, message *models.OrderMessage) error {
	id, err := r.insert(ctx, "create", `
		INSERT INTO order_messages (order_id, sender_id, message)
		VALUES (?, ?, ?)
		RETURNING id`,
		message.OrderID,
		message.SenderID,
		message.Message,
	)
	if err != nil {
		return err
	}

	created := &models.OrderMessage{}
	err = r.get(ctx, "get_by_id", created,
		`SELECT id, order_id, sender_id, message, created_at FROM order_messages WHERE id = ?`, id)
	if err != nil {
		return r.notFound(err, "get_by_id", id)
	}

	*message = *created
	return nil
}

// ListByOrder retrieves the thread of an order, oldest first
func (r *OrderMessageRepository) ListByOrder(ctx context.Context, orderID int64) ([]*models.OrderMessageDetails, error) {
	messages := []*models.OrderMessageDetails{}
	err := r.selectRows(ctx, "list_by_order", &messages, `
		SELECT m.id, m.order_id, m.sender_id, m.message, m.created_at,
			   u.name AS sender_name, u.role AS sender_role
		FROM order_messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.order_id = ?
		ORDER BY m.created_at ASC, m.id ASC`, orderID)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ContactMessageRepository implements repositories.ContactMessageRepository
type ContactMessageRepository struct {
	baseRepository
}

// NewContactMessageRepository creates a contact message repository bound to ext
func NewContactMessageRepository(ext sqlx.ExtContext, logger *logrus.Logger) repositories.ContactMessageRepository {
	return &ContactMessageRepository{baseRepository: newBaseRepository(ext, "contact_message", logger)}
}

// Create stores a contact-form submission
func (r *ContactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	id, err := r.insert(ctx, "create", `
		INSERT INTO contact_messages (name, phone, email, message)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		message.Name,
		message.Phone,
		message.Email,
		message.Message,
	)
	if err != nil {
		return err
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	*message = *created
	return nil
}

// GetByID retrieves a submission by ID
func (r *ContactMessageRepository) GetByID(ctx context.Context, id int64) (*models.ContactMessage, error) {
	message := &models.ContactMessage{}
	err := r.get(ctx, "get_by_id", message,
		`SELECT id, name, phone, email, message, created_at FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return nil, r.notFound(err, "get_by_id", id)
	}
	return message, nil
}
