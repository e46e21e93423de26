package toolsvc

import (
	"context"
	"errors"

	"borrowbox/model"
	toolrepo "borrowbox/repository/tool"
	"borrowbox/util/geo"
)

var (
	ErrNotFound = errors.New("tool not found")
	ErrNotOwner = errors.New("not the owner")
	ErrBorrowed = errors.New("tool currently borrowed")
)

type Service interface {
	Create(ctx context.Context, sess model.Session, req model.CreateToolReq) (*model.Tool, error)
	List(ctx context.Context, search, category string) ([]model.Tool, error)
	Detail(ctx context.Context, id int64, callerLat, callerLon *float64) (*model.Tool, error)
	Mine(ctx context.Context, sess model.Session) ([]model.Tool, error)
	Delete(ctx context.Context, sess model.Session, id int64) error
}

type service struct{ r toolrepo.Repo }

func New(r toolrepo.Repo) Service { return &service{r} }

func (s *service) Create(ctx context.Context, sess model.Session, req model.CreateToolReq) (*model.Tool, error) {
	t := &model.Tool{
		Name:               req.Name,
		Description:        req.Description,
		Category:           model.ToolCategory(req.Category),
		PricePerDay:        req.PricePerDay,
		PickupLocationName: req.PickupLocationName,
		PickupLocationDesc: req.PickupLocationDesc,
		PickupLat:          req.PickupLat,
		PickupLon:          req.PickupLon,
		ImageURL:           req.ImageURL,
		OwnerID:            sess.UserID,
		OwnerName:          sess.DisplayName,
		Available:          true,
	}
	if err := s.r.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context, search, category string) ([]model.Tool, error) {
	return s.r.List(ctx, search, category)
}

// Detail attaches the distance from the caller when both sides have
// coordinates.
func (s *service) Detail(ctx context.Context, id int64, callerLat, callerLon *float64) (*model.Tool, error) {
	t, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	if t.PickupLat != nil && t.PickupLon != nil && callerLat != nil && callerLon != nil {
		d := geo.DistanceKm(*t.PickupLat, *t.PickupLon, *callerLat, *callerLon)
		t.DistanceKm = &d
	}
	return t, nil
}

func (s *service) Mine(ctx context.Context, sess model.Session) ([]model.Tool, error) {
	return s.r.ListByOwner(ctx, sess.UserID)
}

// Delete removes an owned listing. A tool that is out with a borrower, or
// reserved pending payment, cannot be deleted.
func (s *service) Delete(ctx context.Context, sess model.Session, id int64) error {
	t, err := s.r.ByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrNotFound
	}
	if t.OwnerID != sess.UserID {
		return ErrNotOwner
	}
	if err := s.r.DeleteOwned(ctx, id, sess.UserID); err != nil {
		if errors.Is(err, toolrepo.ErrBorrowed) {
			return ErrBorrowed
		}
		return err
	}
	return nil
}
