package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"wanderwise/internal/models/db_models"
	"wanderwise/internal/models/trip_models"
	"wanderwise/pkg/utils"
)

// SavedPlanRepositoryInterface is implemented by the postgres and mongo
// backends. Lookups are always scoped to userID; a plan owned by someone else
// is reported as utils.ErrPlanNotFound.
type SavedPlanRepositoryInterface interface {
	Create(ctx context.Context, plan *trip_models.SavedPlan) error
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]trip_models.SavedPlan, error)
	FindByID(ctx context.Context, userID, planID string) (*trip_models.SavedPlan, error)
	Delete(ctx context.Context, userID, planID string) error
}

type SavedPlanRepository struct {
	db *gorm.DB
}

func NewSavedPlanRepository(db *gorm.DB) SavedPlanRepositoryInterface {
	return &SavedPlanRepository{db: db}
}

func (r *SavedPlanRepository) Create(ctx context.Context, plan *trip_models.SavedPlan) error {
	row, err := toSavedPlanRow(plan)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	plan.ID = row.ID.String()
	return nil
}

func (r *SavedPlanRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]trip_models.SavedPlan, error) {
	var rows []db_models.SavedPlan
	err := r.db.WithContext(ctx).
		Where("account_id = ?", userID).
		Order("saved_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	plans := make([]trip_models.SavedPlan, 0, len(rows))
	for i := range rows {
		plan, err := fromSavedPlanRow(&rows[i])
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, nil
}

func (r *SavedPlanRepository) FindByID(ctx context.Context, userID, planID string) (*trip_models.SavedPlan, error) {
	if _, err := uuid.Parse(planID); err != nil {
		return nil, utils.ErrPlanNotFound
	}

	var row db_models.SavedPlan
	err := r.db.WithContext(ctx).
		First(&row, "id = ? AND account_id = ?", planID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrPlanNotFound
		}
		return nil, err
	}
	return fromSavedPlanRow(&row)
}

func (r *SavedPlanRepository) Delete(ctx context.Context, userID, planID string) error {
	if _, err := uuid.Parse(planID); err != nil {
		return utils.ErrPlanNotFound
	}

	res := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", planID, userID).
		Delete(&db_models.SavedPlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrPlanNotFound
	}
	return nil
}

func toSavedPlanRow(plan *trip_models.SavedPlan) (*db_models.SavedPlan, error) {
	accountID, err := uuid.Parse(plan.UserID)
	if err != nil {
		return nil, err
	}

	row := &db_models.SavedPlan{
		AccountID:                     accountID,
		SavedAt:                       plan.Timestamp,
		FinalDestinationCityToDisplay: plan.FinalDestinationCityToDisplay,
		UploadedImageFileName:         plan.UploadedImageFileName,
	}
	if row.SuggestedCity, err = toJSONColumn(plan.SuggestedCity); err != nil {
		return nil, err
	}
	if row.ItineraryData, err = toJSONColumn(plan.ItineraryData); err != nil {
		return nil, err
	}
	return row, nil
}

func toJSONColumn[T any](v *T) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	return datatypes.JSON(b), err
}

func fromJSONColumn[T any](col datatypes.JSON) (*T, error) {
	if len(col) == 0 || string(col) == "null" {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(col, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func fromSavedPlanRow(row *db_models.SavedPlan) (*trip_models.SavedPlan, error) {
	suggestion, err := fromJSONColumn[trip_models.CitySuggestion](row.SuggestedCity)
	if err != nil {
		return nil, err
	}
	itinerary, err := fromJSONColumn[trip_models.Itinerary](row.ItineraryData)
	if err != nil {
		return nil, err
	}

	return &trip_models.SavedPlan{
		ID:        row.ID.String(),
		UserID:    row.AccountID.String(),
		Timestamp: row.SavedAt,
		TripPlanResult: trip_models.TripPlanResult{
			SuggestedCity:                 suggestion,
			ItineraryData:                 itinerary,
			FinalDestinationCityToDisplay: row.FinalDestinationCityToDisplay,
			UploadedImageFileName:         row.UploadedImageFileName,
		},
	}, nil
}
