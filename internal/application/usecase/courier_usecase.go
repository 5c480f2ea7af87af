// internal/application/usecase/courier_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"homeplate/internal/domain/actor"
	courierdom "homeplate/internal/domain/courier"
	userdom "homeplate/internal/domain/user"
)

// Mailer is the outbound email port (SendGrid adapter in production).
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

var ErrAlreadyApplied = errors.New("courier_usecase: application already exists for this restaurant")

// CourierUsecase covers the application flow: a courier applies once per
// restaurant; the owner approves or rejects. An approval dispatches a
// best-effort email to the courier.
type CourierUsecase struct {
	Apps   courierdom.Repository
	Users  userdom.Repository
	Mailer Mailer
	From   string
	Viewer *actor.Context

	NewID func() string
	Now   func() time.Time
}

func NewCourierUsecase(apps courierdom.Repository, users userdom.Repository, mailer Mailer, from string, viewer *actor.Context) *CourierUsecase {
	return &CourierUsecase{
		Apps:   apps,
		Users:  users,
		Mailer: mailer,
		From:   from,
		Viewer: viewer,
		NewID:  uuid.NewString,
		Now:    time.Now,
	}
}

// Apply creates one pending application per (courier, restaurant) pair.
func (u *CourierUsecase) Apply(ctx context.Context, restaurantID string) (courierdom.Application, error) {
	if u == nil || u.Apps == nil {
		return courierdom.Application{}, errors.New("courier_usecase: not initialized")
	}

	existing, err := u.Apps.ListByCourier(ctx, u.Viewer.ID)
	if err != nil {
		return courierdom.Application{}, err
	}
	for _, a := range existing {
		if a.RestaurantID == restaurantID {
			return courierdom.Application{}, ErrAlreadyApplied
		}
	}

	a, err := courierdom.NewApplication(u.NewID(), u.Viewer.ID, restaurantID, u.Now())
	if err != nil {
		return courierdom.Application{}, err
	}
	if err := u.Apps.Create(ctx, a); err != nil {
		return courierdom.Application{}, err
	}
	return a, nil
}

// Approve moves pending -> approved and emails the courier. The email is
// best-effort: a mail failure never undoes the decision.
func (u *CourierUsecase) Approve(ctx context.Context, applicationID string) error {
	if err := u.decide(ctx, applicationID, courierdom.StatusApproved); err != nil {
		return err
	}
	u.notifyApproved(ctx, applicationID)
	return nil
}

func (u *CourierUsecase) Reject(ctx context.Context, applicationID string) error {
	return u.decide(ctx, applicationID, courierdom.StatusRejected)
}

func (u *CourierUsecase) decide(ctx context.Context, id string, target courierdom.ApplicationStatus) error {
	if u == nil || u.Apps == nil {
		return errors.New("courier_usecase: not initialized")
	}
	a, err := u.Apps.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := a.Decide(target); err != nil {
		return err
	}
	return u.Apps.PatchStatus(ctx, id, target)
}

func (u *CourierUsecase) notifyApproved(ctx context.Context, applicationID string) {
	if u.Mailer == nil || u.Users == nil {
		return
	}
	a, err := u.Apps.GetByID(ctx, applicationID)
	if err != nil {
		log.Printf("[courier] approval mail skipped, reload failed: %v", err)
		return
	}
	courierUser, err := u.Users.GetByID(ctx, a.CourierID)
	if err != nil || courierUser.Email == "" {
		log.Printf("[courier] approval mail skipped, no address for %s", a.CourierID)
		return
	}
	subject := "Your courier application was approved"
	body := fmt.Sprintf("Hi %s,\n\nyou can now pick up deliveries for restaurant %s.", courierUser.DisplayName, a.RestaurantID)
	if err := u.Mailer.Send(ctx, u.From, courierUser.Email, subject, body); err != nil {
		log.Printf("[courier] approval mail failed: %v", err)
	}
}
