package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
)

type AdminDirectory interface {
	AdminEmails(ctx context.Context) ([]string, error)
}

// NotificationService sends the post-checkout emails: a confirmation to the
// buyer and an alert to every admin account.
type NotificationService struct {
	Admins AdminDirectory
	Mailer Mailer
}

func NewNotificationService(admins AdminDirectory, mailer Mailer) *NotificationService {
	return &NotificationService{Admins: admins, Mailer: mailer}
}

func (s *NotificationService) OrderPlaced(ctx context.Context, customerEmail string, order *model.Order, items []model.OrderItem) {
	log := logrus.WithField("order_id", order.ID)

	if err := s.Mailer.SendOrderConfirmation(ctx, customerEmail, order, items); err != nil {
		log.WithError(err).Error("order confirmation email failed")
	}

	adminEmails, err := s.Admins.AdminEmails(ctx)
	if err != nil {
		log.WithError(err).Error("could not list admin emails")
		return
	}
	for _, adminEmail := range adminEmails {
		if err := s.Mailer.SendAdminOrderAlert(ctx, adminEmail, customerEmail, order, items); err != nil {
			log.WithError(err).WithField("admin", adminEmail).Error("admin order alert failed")
		}
	}
}
