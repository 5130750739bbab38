package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// fakeFavoriteStore is an in-memory FavoriteRepository, enough to
// observe toggle semantics across calls.
type fakeFavoriteStore struct {
	ids []int64
}

func (f *fakeFavoriteStore) Add(ctx context.Context, userID string, storyID int64) error {
	f.ids = append(f.ids, storyID)
	return nil
}

func (f *fakeFavoriteStore) Remove(ctx context.Context, userID string, storyID int64) error {
	kept := f.ids[:0]
	for _, id := range f.ids {
		if id != storyID {
			kept = append(kept, id)
		}
	}
	f.ids = kept
	return nil
}

func (f *fakeFavoriteStore) Exists(ctx context.Context, userID string, storyID int64) (bool, error) {
	for _, id := range f.ids {
		if id == storyID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFavoriteStore) ListStoryIDs(ctx context.Context, userID string) ([]int64, error) {
	return append([]int64(nil), f.ids...), nil
}

func TestFavoriteService_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("DoubleToggleRestoresOriginalState", func(t *testing.T) {
		storyRepo := new(MockStoryRepository)
		storyRepo.On("Exists", mock.Anything, int64(7)).Return(true, nil)
		store := &fakeFavoriteStore{ids: []int64{3}}
		svc := NewFavoriteService(store, storyRepo)

		first, err := svc.Toggle(ctx, "user-1", 7)
		assert.NoError(t, err)
		assert.Equal(t, []int64{3, 7}, first)

		second, err := svc.Toggle(ctx, "user-1", 7)
		assert.NoError(t, err)
		assert.Equal(t, []int64{3}, second)
	})

	t.Run("AddThenRemoveKeepsOtherEntries", func(t *testing.T) {
		storyRepo := new(MockStoryRepository)
		storyRepo.On("Exists", mock.Anything, mock.Anything).Return(true, nil)
		store := &fakeFavoriteStore{}
		svc := NewFavoriteService(store, storyRepo)

		svc.Toggle(ctx, "user-1", 3)
		svc.Toggle(ctx, "user-1", 7)
		got, err := svc.Toggle(ctx, "user-1", 3)
		assert.NoError(t, err)
		assert.Equal(t, []int64{7}, got)
	})

	t.Run("MissingStory", func(t *testing.T) {
		storyRepo := new(MockStoryRepository)
		storyRepo.On("Exists", mock.Anything, int64(99)).Return(false, nil).Once()
		store := &fakeFavoriteStore{ids: []int64{3}}
		svc := NewFavoriteService(store, storyRepo)

		_, err := svc.Toggle(ctx, "user-1", 99)
		assert.ErrorIs(t, err, ErrStoryNotFound)
		// nothing touched
		assert.Equal(t, []int64{3}, store.ids)
	})
}
