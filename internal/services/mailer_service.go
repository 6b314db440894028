package services

import (
	"context"
	"time"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
)

type Mailer interface {
	SendAdminPin(ctx context.Context, toEmail, pin string, ttl time.Duration) error
	SendOrderConfirmation(ctx context.Context, toEmail string, order *model.Order, items []model.OrderItem) error
	SendAdminOrderAlert(ctx context.Context, toEmail, customerEmail string, order *model.Order, items []model.OrderItem) error
}
