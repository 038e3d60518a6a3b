package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/openmat/internal/client/client"
	"github.com/dmitrijs2005/openmat/internal/client/models"
	"github.com/dmitrijs2005/openmat/internal/client/session"
)

type ProfileService interface {
	// Current returns the profile held by the session, without a request.
	Current(ctx context.Context) (*models.Profile, error)
	// Update saves the changes and pushes the server's answer into the
	// session.
	Update(ctx context.Context, upd models.ProfileUpdate) (*models.Profile, error)
}

type profileService struct {
	client client.Client
}

func NewProfileService(c client.Client) ProfileService {
	return &profileService{client: c}
}

func (s *profileService) Current(ctx context.Context) (*models.Profile, error) {
	_, snap, err := currentUser(ctx)
	return snap.User, err
}

func (s *profileService) Update(ctx context.Context, upd models.ProfileUpdate) (*models.Profile, error) {
	sess, snap, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.client.UpdateProfile(ctx, upd)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if !sess.UpdateUserAt(snap.Generation, *p) {
		return nil, fmt.Errorf("profile saved, but the session ended meanwhile: %w", ErrNotLoggedIn)
	}
	return p, nil
}

func currentUser(ctx context.Context) (*session.Store, session.Snapshot, error) {
	sess, err := session.FromContext(ctx)
	if err != nil {
		return nil, session.Snapshot{}, err
	}
	snap := sess.Snapshot()
	if !snap.IsLoggedIn {
		return nil, session.Snapshot{}, ErrNotLoggedIn
	}
	return sess, snap, nil
}
