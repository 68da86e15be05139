package food

import (
	"context"
	"testing"

	"github.com/MethuParoi/share-bites-server-codebase/internal/common"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func strPtr(s string) *string { return &s }

func seed(t *testing.T, r *InMemoryRepository, entries ...models.FoodEntry) []string {
	t.Helper()
	var ids []string
	for i := range entries {
		e, err := r.Insert(context.Background(), &entries[i])
		require.NoError(t, err)
		ids = append(ids, e.ID.Hex())
	}
	return ids
}

func TestInMemoryRepository_InsertAndFindOne(t *testing.T) {
	r := NewInMemoryRepository()
	ids := seed(t, r, models.FoodEntry{FoodName: "Rice", DonatorEmail: "a@x.io"})

	got, err := r.FindOne(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Rice", got.FoodName)
	assert.Equal(t, ids[0], got.ID.Hex())
}

func TestInMemoryRepository_FindOne_Errors(t *testing.T) {
	r := NewInMemoryRepository()

	_, err := r.FindOne(context.Background(), "not-hex")
	assert.ErrorIs(t, err, common.ErrInvalidIdentifier)

	_, err = r.FindOne(context.Background(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestInMemoryRepository_FindAll_Filter(t *testing.T) {
	r := NewInMemoryRepository()
	seed(t, r,
		models.FoodEntry{FoodName: "A", DonatorEmail: "a@x.io", Status: models.StatusAvailable},
		models.FoodEntry{FoodName: "B", DonatorEmail: "b@x.io", Status: models.StatusAvailable},
		models.FoodEntry{FoodName: "C", DonatorEmail: "a@x.io", Status: models.StatusRequested},
	)

	tests := []struct {
		name   string
		filter models.FoodFilter
		want   []string
	}{
		{"all", models.FoodFilter{}, []string{"A", "B", "C"}},
		{"by donator", models.FoodFilter{DonatorEmail: "a@x.io"}, []string{"A", "C"}},
		{"by status", models.FoodFilter{Status: models.StatusAvailable}, []string{"A", "B"}},
		{"both", models.FoodFilter{DonatorEmail: "a@x.io", Status: models.StatusRequested}, []string{"C"}},
		{"none", models.FoodFilter{DonatorEmail: "nobody@x.io"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.FindAll(context.Background(), tt.filter)
			require.NoError(t, err)
			names := []string{}
			for _, e := range got {
				names = append(names, e.FoodName)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestInMemoryRepository_UpdateFields(t *testing.T) {
	r := NewInMemoryRepository()
	ids := seed(t, r, models.FoodEntry{FoodName: "Rice", DonatorEmail: "a@x.io"})
	ctx := context.Background()

	res, err := r.UpdateFields(ctx, ids[0], models.FoodPatch{FoodName: strPtr("Beans")})
	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, res)

	got, err := r.FindOne(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Beans", got.FoodName)
	assert.Equal(t, "a@x.io", got.DonatorEmail)
	assert.False(t, got.UpdatedAt.IsZero())

	res, err = r.UpdateFields(ctx, ids[0], models.FoodPatch{FoodName: strPtr("Beans")})
	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{MatchedCount: 1, ModifiedCount: 0}, res)

	_, err = r.UpdateFields(ctx, ids[0], models.FoodPatch{})
	assert.ErrorIs(t, err, common.ErrEmptyPatch)

	res, err = r.UpdateFields(ctx, bson.NewObjectID().Hex(), models.FoodPatch{FoodName: strPtr("X")})
	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{}, res)
}

func TestInMemoryRepository_Remove(t *testing.T) {
	r := NewInMemoryRepository()
	ids := seed(t, r, models.FoodEntry{FoodName: "A"}, models.FoodEntry{FoodName: "B"})
	ctx := context.Background()

	n, err := r.Remove(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = r.Remove(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	all, err := r.FindAll(ctx, models.FoodFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "B", all[0].FoodName)

	_, err = r.Remove(ctx, "zzz")
	assert.ErrorIs(t, err, common.ErrInvalidIdentifier)
}
