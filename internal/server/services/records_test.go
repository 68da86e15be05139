package services

import (
	"context"
	"testing"

	"github.com/MethuParoi/share-bites-server-codebase/internal/common"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/models"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/repositories/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordService() *RecordService {
	return NewRecordService(records.NewInMemoryRepository())
}

func TestRecordService_RoundTrip(t *testing.T) {
	s := newRecordService()
	ctx := context.Background()

	res, err := s.Put(ctx, owner, RecordInput{UserID: owner, Foods: []models.FoodRef{{FoodID: "f1", FoodName: "Rice"}}})
	require.NoError(t, err)
	assert.NotEmpty(t, res.UpsertedID)

	rec, err := s.Get(ctx, owner, owner)
	require.NoError(t, err)
	assert.Equal(t, owner, rec.UserID)
	require.Len(t, rec.Foods, 1)
	assert.Equal(t, "f1", rec.Foods[0].FoodID)
	assert.False(t, rec.Foods[0].AddedAt.IsZero())

	res, err = s.Put(ctx, owner, RecordInput{Foods: []models.FoodRef{{FoodID: "f1"}, {FoodID: "f2"}}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Empty(t, res.UpsertedID)
}

func TestRecordService_Put_RejectsOtherUser(t *testing.T) {
	s := newRecordService()
	ctx := context.Background()

	_, err := s.Put(ctx, owner, RecordInput{UserID: stranger})
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, err = s.Get(ctx, stranger, stranger)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRecordService_SelfOnly(t *testing.T) {
	s := newRecordService()
	ctx := context.Background()
	_, err := s.Put(ctx, owner, RecordInput{Foods: []models.FoodRef{{FoodID: "f1"}}})
	require.NoError(t, err)

	foods := []models.FoodRef{}
	tests := []struct {
		name string
		call func() error
	}{
		{"get", func() error { _, err := s.Get(ctx, stranger, owner); return err }},
		{"update", func() error {
			_, err := s.Update(ctx, stranger, owner, models.RecordPatch{Foods: &foods})
			return err
		}},
		{"pull", func() error { _, err := s.Pull(ctx, stranger, owner, "f1"); return err }},
		{"empty session", func() error { _, err := s.Get(ctx, "", ""); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), common.ErrForbidden)
		})
	}

	rec, err := s.Get(ctx, owner, owner)
	require.NoError(t, err)
	assert.Len(t, rec.Foods, 1)
}

func TestRecordService_Update(t *testing.T) {
	s := newRecordService()
	ctx := context.Background()
	foods := []models.FoodRef{{FoodID: "f9"}}

	_, err := s.Update(ctx, owner, owner, models.RecordPatch{Foods: &foods})
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = s.Put(ctx, owner, RecordInput{Foods: []models.FoodRef{{FoodID: "f1"}}})
	require.NoError(t, err)

	res, err := s.Update(ctx, owner, owner, models.RecordPatch{Foods: &foods})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)

	_, err = s.Update(ctx, owner, owner, models.RecordPatch{})
	assert.ErrorIs(t, err, common.ErrEmptyPatch)
}

func TestRecordService_Pull_AbsentIsNoop(t *testing.T) {
	s := newRecordService()
	ctx := context.Background()
	_, err := s.Put(ctx, owner, RecordInput{Foods: []models.FoodRef{{FoodID: "f1"}}})
	require.NoError(t, err)

	n, err := s.Pull(ctx, owner, owner, "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = s.Pull(ctx, owner, owner, "f1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rec, err := s.Get(ctx, owner, owner)
	require.NoError(t, err)
	assert.Empty(t, rec.Foods)
}
