package shops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	internalshared "github.com/roundstock/roundstock/internal/shared"
)

type memoryRepo struct {
	shops      map[int64]Shop
	referenced map[int64]bool
	nextID     int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{shops: make(map[int64]Shop), referenced: make(map[int64]bool)}
}

func (r *memoryRepo) List(ctx context.Context, includeInactive bool) ([]Shop, error) {
	var out []Shop
	for _, s := range r.shops {
		if s.IsActive || includeInactive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return Shop{}, internalshared.ErrNotFound
	}
	return s, nil
}

func (r *memoryRepo) Create(ctx context.Context, shop Shop) (Shop, error) {
	r.nextID++
	shop.ID = r.nextID
	shop.IsActive = true
	r.shops[shop.ID] = shop
	return shop, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, shop Shop) error {
	if _, ok := r.shops[id]; !ok {
		return internalshared.ErrNotFound
	}
	shop.ID = id
	r.shops[id] = shop
	return nil
}

func (r *memoryRepo) Deactivate(ctx context.Context, id int64) error {
	s, ok := r.shops[id]
	if !ok {
		return internalshared.ErrNotFound
	}
	s.IsActive = false
	r.shops[id] = s
	return nil
}

func (r *memoryRepo) Referenced(ctx context.Context, id int64) (bool, error) {
	return r.referenced[id], nil
}

func (r *memoryRepo) HardDelete(ctx context.Context, id int64) error {
	if _, ok := r.shops[id]; !ok {
		return internalshared.ErrNotFound
	}
	delete(r.shops, id)
	return nil
}

func TestDeleteUnreferencedShopRemovesRow(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	shop, err := svc.Create(ctx, CreateShopRequest{Code: "S01", Name: "North"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, shop.ID))
	_, ok := repo.shops[shop.ID]
	require.False(t, ok)
}

func TestDeleteReferencedShopDeactivates(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	shop, err := svc.Create(ctx, CreateShopRequest{Code: "S01", Name: "North"})
	require.NoError(t, err)
	repo.referenced[shop.ID] = true

	require.NoError(t, svc.Delete(ctx, shop.ID))
	kept, ok := repo.shops[shop.ID]
	require.True(t, ok)
	require.False(t, kept.IsActive)
}

func TestCreateRequiresCodeAndName(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.Create(context.Background(), CreateShopRequest{Code: " ", Name: "North"})
	require.ErrorIs(t, err, internalshared.ErrValidation)
}
