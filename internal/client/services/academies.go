package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/openmat/internal/client/client"
	"github.com/dmitrijs2005/openmat/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// AcademyFilter holds the search form. Empty fields are not sent.
type AcademyFilter struct {
	Term      string
	AmenityID string
	PassType  string
	ClassDay  string
	Country   string
}

func (f AcademyFilter) Params() map[string]string {
	params := make(map[string]string)
	for k, v := range map[string]string{
		"term":       f.Term,
		"amenity_id": f.AmenityID,
		"pass_type":  f.PassType,
		"class_day":  f.ClassDay,
		"country":    f.Country,
	} {
		if v = strings.TrimSpace(v); v != "" {
			params[k] = v
		}
	}
	return params
}

func (f AcademyFilter) IsEmpty() bool {
	return len(f.Params()) == 0
}

// Catalog is the academy list with the lookups the filter form offers.
type Catalog struct {
	Academies []models.Academy
	Amenities []models.Amenity
	Countries []models.Country
}

type AcademyService interface {
	// Browse loads academies, amenities and countries concurrently. Any
	// failure fails the whole load.
	Browse(ctx context.Context) (*Catalog, error)
	Search(ctx context.Context, f AcademyFilter) ([]models.Academy, error)
	Detail(ctx context.Context, id int64) (*models.AcademyDetail, error)
}

type academyService struct {
	client client.Client
}

func NewAcademyService(c client.Client) AcademyService {
	return &academyService{client: c}
}

func (s *academyService) Browse(ctx context.Context) (*Catalog, error) {
	var cat Catalog
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.client.Academies(gctx, nil)
		cat.Academies = list
		return err
	})
	g.Go(func() error {
		list, err := s.client.Amenities(gctx)
		cat.Amenities = list
		return err
	})
	g.Go(func() error {
		list, err := s.client.Countries(gctx)
		cat.Countries = list
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load academies: %w", err)
	}
	return &cat, nil
}

func (s *academyService) Search(ctx context.Context, f AcademyFilter) ([]models.Academy, error) {
	list, err := s.client.Academies(ctx, f.Params())
	if err != nil {
		return nil, fmt.Errorf("search academies: %w", err)
	}
	return list, nil
}

func (s *academyService) Detail(ctx context.Context, id int64) (*models.AcademyDetail, error) {
	d, err := s.client.Academy(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load academy %d: %w", id, err)
	}
	return d, nil
}
