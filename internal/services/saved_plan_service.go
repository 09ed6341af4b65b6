package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"wanderwise/internal/models/trip_models"
	"wanderwise/internal/repositories"
	"wanderwise/pkg/utils"
)

const maxPageSize = 100

type SavedPlanServiceInterface interface {
	Save(ctx context.Context, userID string, result trip_models.TripPlanResult) (*trip_models.SavedPlan, error)
	List(ctx context.Context, userID string, page, pageSize int) ([]trip_models.SavedPlan, error)
	Get(ctx context.Context, userID, planID string) (*trip_models.SavedPlan, error)
	Delete(ctx context.Context, userID, planID string) error
}

type SavedPlanService struct {
	repo   repositories.SavedPlanRepositoryInterface
	now    func() time.Time
	logger *zap.Logger
}

func NewSavedPlanService(repo repositories.SavedPlanRepositoryInterface, logger *zap.Logger) SavedPlanServiceInterface {
	return &SavedPlanService{repo: repo, now: time.Now, logger: logger.Named("saved_plans")}
}

func (s *SavedPlanService) Save(ctx context.Context, userID string, result trip_models.TripPlanResult) (*trip_models.SavedPlan, error) {
	if result.IsEmpty() {
		return nil, utils.ErrNothingToSave
	}

	plan := &trip_models.SavedPlan{
		UserID:         userID,
		Timestamp:      s.now().UnixMilli(),
		TripPlanResult: result,
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		s.logger.Error("save plan", zap.String("user_id", userID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	s.logger.Info("plan saved", zap.String("user_id", userID), zap.String("plan_id", plan.ID))
	return plan, nil
}

func (s *SavedPlanService) List(ctx context.Context, userID string, page, pageSize int) ([]trip_models.SavedPlan, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, utils.ErrInvalidPageSize
	}

	plans, err := s.repo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		s.logger.Error("list plans", zap.String("user_id", userID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return plans, nil
}

func (s *SavedPlanService) Get(ctx context.Context, userID, planID string) (*trip_models.SavedPlan, error) {
	plan, err := s.repo.FindByID(ctx, userID, planID)
	if err != nil {
		return nil, s.mapRepoErr(err)
	}
	return plan, nil
}

func (s *SavedPlanService) Delete(ctx context.Context, userID, planID string) error {
	if err := s.repo.Delete(ctx, userID, planID); err != nil {
		return s.mapRepoErr(err)
	}
	s.logger.Info("plan deleted", zap.String("user_id", userID), zap.String("plan_id", planID))
	return nil
}

func (s *SavedPlanService) mapRepoErr(err error) error {
	if errors.Is(err, utils.ErrPlanNotFound) {
		return err
	}
	s.logger.Error("saved plan storage", zap.Error(err))
	return utils.ErrDatabaseError
}
