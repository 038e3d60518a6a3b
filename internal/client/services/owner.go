package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/openmat/internal/client/client"
	"github.com/dmitrijs2005/openmat/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// Dashboard is everything an academy owner manages.
type Dashboard struct {
	Academy   models.AcademyDetail
	Pending   []models.OrderLineItem
	Schedules []models.ClassSchedule
	Passes    []models.Pass
}

type OwnerService interface {
	// Dashboard finds the academy owned by the signed-in user and loads its
	// pending line items, class schedules and passes.
	Dashboard(ctx context.Context) (*Dashboard, error)
	Approve(ctx context.Context, itemID int64) error
	Reject(ctx context.Context, itemID int64) error
	AddClass(ctx context.Context, academyID int64, in models.ClassScheduleInput) (*models.ClassSchedule, error)
	DeleteClass(ctx context.Context, academyID, scheduleID int64) error
	AddPass(ctx context.Context, academyID int64, in models.PassInput) (*models.Pass, error)
	DeletePass(ctx context.Context, academyID, passID int64) error
}

type ownerService struct {
	client client.Client
}

func NewOwnerService(c client.Client) OwnerService {
	return &ownerService{client: c}
}

func (s *ownerService) Dashboard(ctx context.Context) (*Dashboard, error) {
	_, snap, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	user := snap.User

	academies, err := s.client.Academies(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load academies: %w", err)
	}

	var academyID int64
	for _, a := range academies {
		if a.UserID == user.ID {
			academyID = a.ID
			break
		}
	}
	if academyID == 0 {
		return nil, ErrNoAcademy
	}

	var (
		d      Dashboard
		detail *models.AcademyDetail
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Pending, err = s.client.OrderLineItems(gctx, academyID, models.ItemPendingApproval)
		return err
	})
	g.Go(func() (err error) {
		d.Schedules, err = s.client.ClassSchedules(gctx, academyID)
		return err
	})
	g.Go(func() (err error) {
		detail, err = s.client.Academy(gctx, academyID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	d.Academy = *detail
	d.Passes = detail.Passes
	return &d, nil
}

func (s *ownerService) Approve(ctx context.Context, itemID int64) error {
	return s.setItemStatus(ctx, itemID, models.ItemApproved)
}

func (s *ownerService) Reject(ctx context.Context, itemID int64) error {
	return s.setItemStatus(ctx, itemID, models.ItemRejected)
}

func (s *ownerService) setItemStatus(ctx context.Context, itemID int64, status string) error {
	if err := s.client.UpdateOrderLineItem(ctx, itemID, status); err != nil {
		return fmt.Errorf("mark item %d %s: %w", itemID, status, err)
	}
	return nil
}

func (s *ownerService) AddClass(ctx context.Context, academyID int64, in models.ClassScheduleInput) (*models.ClassSchedule, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	sched, err := s.client.CreateClassSchedule(ctx, academyID, in)
	if err != nil {
		return nil, fmt.Errorf("add class: %w", err)
	}
	return sched, nil
}

func (s *ownerService) DeleteClass(ctx context.Context, academyID, scheduleID int64) error {
	if err := s.client.DeleteClassSchedule(ctx, academyID, scheduleID); err != nil {
		return fmt.Errorf("delete class %d: %w", scheduleID, err)
	}
	return nil
}

func (s *ownerService) AddPass(ctx context.Context, academyID int64, in models.PassInput) (*models.Pass, error) {
	payload, err := in.ToPayload()
	if err != nil {
		return nil, err
	}
	p, err := s.client.CreatePass(ctx, academyID, payload)
	if err != nil {
		return nil, fmt.Errorf("add pass: %w", err)
	}
	return p, nil
}

func (s *ownerService) DeletePass(ctx context.Context, academyID, passID int64) error {
	if err := s.client.DeletePass(ctx, academyID, passID); err != nil {
		return fmt.Errorf("delete pass %d: %w", passID, err)
	}
	return nil
}
