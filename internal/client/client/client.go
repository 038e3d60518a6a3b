package client

import (
	"context"

	"github.com/dmitrijs2005/openmat/internal/client/models"
)

// Client is the transport-agnostic contract of the OpenMat API.
type Client interface {
	Ping(ctx context.Context) error

	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Profile, error)

	Academies(ctx context.Context, params map[string]string) ([]models.Academy, error)
	Academy(ctx context.Context, id int64) (*models.AcademyDetail, error)
	Amenities(ctx context.Context) ([]models.Amenity, error)
	Countries(ctx context.Context) ([]models.Country, error)

	Orders(ctx context.Context) ([]models.Order, error)
	ConfirmOrder(ctx context.Context, orderID int64) error

	OrderLineItems(ctx context.Context, academyID int64, status string) ([]models.OrderLineItem, error)
	UpdateOrderLineItem(ctx context.Context, itemID int64, status string) error
	ClassSchedules(ctx context.Context, academyID int64) ([]models.ClassSchedule, error)
	CreateClassSchedule(ctx context.Context, academyID int64, in models.ClassScheduleInput) (*models.ClassSchedule, error)
	DeleteClassSchedule(ctx context.Context, academyID, scheduleID int64) error
	CreatePass(ctx context.Context, academyID int64, p models.PassPayload) (*models.Pass, error)
	DeletePass(ctx context.Context, academyID, passID int64) error
}
