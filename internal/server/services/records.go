package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/common"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/models"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/repositories/records"
)

// RecordInput is the body of a record create/replace call. UserID is
// optional; when present it must match the session.
type RecordInput struct {
	UserID string           `json:"user_id"`
	Foods  []models.FoodRef `json:"foods"`
}

// RecordService manages one per-user record collection. The same service
// type backs both added and requested food.
type RecordService struct {
	repo records.Repository
}

func NewRecordService(repo records.Repository) *RecordService {
	return &RecordService{repo: repo}
}

// authorizeSelf rejects access to another user's record.
func authorizeSelf(email, userID string) error {
	if userID == "" || userID != email {
		return common.ErrForbidden
	}
	return nil
}

func stampAdded(foods []models.FoodRef, now time.Time) []models.FoodRef {
	for i := range foods {
		if foods[i].AddedAt.IsZero() {
			foods[i].AddedAt = now
		}
	}
	return foods
}

// Put atomically creates or replaces the caller's record.
func (s *RecordService) Put(ctx context.Context, email string, in RecordInput) (models.UpsertResult, error) {
	if in.UserID != "" && in.UserID != email {
		return models.UpsertResult{}, common.ErrForbidden
	}

	res, err := s.repo.Upsert(ctx, email, stampAdded(in.Foods, time.Now().UTC()))
	if err != nil {
		return models.UpsertResult{}, fmt.Errorf("upsert record: %w", err)
	}
	return res, nil
}

// Update replaces fields of an existing record. A missing record is not
// created.
func (s *RecordService) Update(ctx context.Context, email, userID string, patch models.RecordPatch) (models.UpdateResult, error) {
	if err := authorizeSelf(email, userID); err != nil {
		return models.UpdateResult{}, err
	}
	if patch.Foods != nil {
		stampAdded(*patch.Foods, time.Now().UTC())
	}

	res, err := s.repo.UpdateFields(ctx, userID, patch)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update record: %w", err)
	}
	if res.MatchedCount == 0 {
		return res, common.ErrNotFound
	}
	return res, nil
}

// Pull removes one food from the caller's record. Removing a food that is
// not there succeeds with nothing modified.
func (s *RecordService) Pull(ctx context.Context, email, userID, foodID string) (int64, error) {
	if err := authorizeSelf(email, userID); err != nil {
		return 0, err
	}

	n, err := s.repo.Pull(ctx, userID, foodID)
	if err != nil {
		return 0, fmt.Errorf("pull %s from record: %w", foodID, err)
	}
	return n, nil
}

func (s *RecordService) Get(ctx context.Context, email, userID string) (*models.UserRecord, error) {
	if err := authorizeSelf(email, userID); err != nil {
		return nil, err
	}
	return s.repo.FindOne(ctx, userID)
}
