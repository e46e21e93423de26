package toolsvc

import (
	"context"
	"strings"
	"testing"

	"borrowbox/model"
	toolrepo "borrowbox/repository/tool"

	"github.com/stretchr/testify/require"
)

type fakeToolRepo struct {
	tools  map[int64]*model.Tool
	nextID int64
}

var _ toolrepo.Repo = (*fakeToolRepo)(nil)

func (f *fakeToolRepo) Create(ctx context.Context, t *model.Tool) error {
	f.nextID++
	t.ID = f.nextID
	cp := *t
	f.tools[t.ID] = &cp
	return nil
}

func (f *fakeToolRepo) List(ctx context.Context, search, category string) ([]model.Tool, error) {
	var out []model.Tool
	for _, t := range f.tools {
		if !t.Available || t.Borrowed {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(search)) {
			continue
		}
		if category != "" && string(t.Category) != category {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeToolRepo) ByID(ctx context.Context, id int64) (*model.Tool, error) {
	t, ok := f.tools[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeToolRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Tool, error) {
	var out []model.Tool
	for _, t := range f.tools {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeToolRepo) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	t, ok := f.tools[id]
	if !ok || t.OwnerID != ownerID || t.Borrowed || !t.Available {
		return toolrepo.ErrBorrowed
	}
	delete(f.tools, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

var owner = model.Session{UserID: 1, DisplayName: "Lender"}

func newFixture() (Service, *fakeToolRepo) {
	repo := &fakeToolRepo{tools: map[int64]*model.Tool{}}
	return New(repo), repo
}

func TestCreate(t *testing.T) {
	svc, repo := newFixture()

	tool, err := svc.Create(context.Background(), owner, model.CreateToolReq{
		Name:               "Hedge Trimmer",
		Category:           "Gardening",
		PricePerDay:        80,
		PickupLocationName: "Campus locker B",
	})
	require.NoError(t, err)
	require.NotZero(t, tool.ID)
	require.Equal(t, int64(1), tool.OwnerID)
	require.Equal(t, "Lender", tool.OwnerName)
	require.True(t, tool.Available)
	require.False(t, tool.Borrowed)
	require.Len(t, repo.tools, 1)
}

func TestList_FiltersSearchAndCategory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture()

	for _, req := range []model.CreateToolReq{
		{Name: "Cordless Drill", Category: "Tools", PricePerDay: 100, PickupLocationName: "A"},
		{Name: "Drill Press", Category: "Tools", PricePerDay: 150, PickupLocationName: "A"},
		{Name: "Projector", Category: "Electronics", PricePerDay: 200, PickupLocationName: "B"},
	} {
		_, err := svc.Create(ctx, owner, req)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	drills, err := svc.List(ctx, "drill", "")
	require.NoError(t, err)
	require.Len(t, drills, 2)

	electronics, err := svc.List(ctx, "", "Electronics")
	require.NoError(t, err)
	require.Len(t, electronics, 1)

	none, err := svc.List(ctx, "drill", "Electronics")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestDetail_Distance(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFixture()

	tool, err := svc.Create(ctx, owner, model.CreateToolReq{
		Name:               "Ladder",
		Category:           "Tools",
		PricePerDay:        30,
		PickupLocationName: "Garage",
		PickupLat:          ptr(0.0),
		PickupLon:          ptr(0.0),
	})
	require.NoError(t, err)

	got, err := svc.Detail(ctx, tool.ID, ptr(0.0), ptr(1.0))
	require.NoError(t, err)
	require.NotNil(t, got.DistanceKm)
	require.InDelta(t, 111.19, *got.DistanceKm, 0.01)

	// No caller coordinates: no distance.
	got, err = svc.Detail(ctx, tool.ID, nil, nil)
	require.NoError(t, err)
	require.Nil(t, got.DistanceKm)
}

func TestDetail_NotFound(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.Detail(context.Background(), 404, nil, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes a listed tool", func(t *testing.T) {
		svc, repo := newFixture()
		tool, err := svc.Create(ctx, owner, model.CreateToolReq{
			Name: "Saw", Category: "Tools", PricePerDay: 20, PickupLocationName: "A",
		})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, owner, tool.ID))
		require.Empty(t, repo.tools)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		svc, _ := newFixture()
		tool, err := svc.Create(ctx, owner, model.CreateToolReq{
			Name: "Saw", Category: "Tools", PricePerDay: 20, PickupLocationName: "A",
		})
		require.NoError(t, err)

		err = svc.Delete(ctx, model.Session{UserID: 9}, tool.ID)
		require.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("borrowed tool cannot be deleted", func(t *testing.T) {
		svc, repo := newFixture()
		tool, err := svc.Create(ctx, owner, model.CreateToolReq{
			Name: "Saw", Category: "Tools", PricePerDay: 20, PickupLocationName: "A",
		})
		require.NoError(t, err)
		repo.tools[tool.ID].Borrowed = true
		repo.tools[tool.ID].Available = false

		err = svc.Delete(ctx, owner, tool.ID)
		require.ErrorIs(t, err, ErrBorrowed)
		require.Len(t, repo.tools, 1)
	})
}
