package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/ammarsarhan/hagz-sub001/models"
	"github.com/ammarsarhan/hagz-sub001/storage"
	"github.com/ammarsarhan/hagz-sub001/utils"
)

const scheduleCacheTTL = 5 * time.Minute

type ScheduleDayInput struct {
	Weekday      int   `json:"weekday" validate:"min=0,max=6"`
	OpenTime     int   `json:"openTime" validate:"min=0,max=24"`
	CloseTime    int   `json:"closeTime" validate:"min=0,max=24"`
	PeakHours    []int `json:"peakHours"`
	OffPeakHours []int `json:"offPeakHours"`
}

type WeeklyScheduleInput struct {
	Days []ScheduleDayInput `json:"days" validate:"required,min=1,max=7,dive"`
}

type ScheduleExceptionInput struct {
	TargetType string    `json:"targetType" validate:"required,oneof=PITCH GROUND COMBINATION"`
	TargetID   uint      `json:"targetID"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
	Reason     string    `json:"reason"`
}

// SetWeeklySchedule replaces the submitted weekdays' rows in one transaction,
// the same replace-then-create shape the bulk availability editor uses.
func SetWeeklySchedule(ctx iris.Context) {
	pitch := ownedPitch(ctx)
	if pitch == nil {
		return
	}

	var input WeeklyScheduleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	for _, day := range input.Days {
		if day.OpenTime >= day.CloseTime {
			utils.CreateError(iris.StatusBadRequest, "Validation Error",
				fmt.Sprintf("Weekday %d: openTime must be before closeTime.", day.Weekday), ctx)
			return
		}
		if !disjointHourSets(day.PeakHours, day.OffPeakHours) {
			utils.CreateError(iris.StatusBadRequest, "Validation Error",
				fmt.Sprintf("Weekday %d: peakHours and offPeakHours must be disjoint.", day.Weekday), ctx)
			return
		}
	}

	weekdays := make([]int, 0, len(input.Days))
	rows := make([]models.Schedule, 0, len(input.Days))
	for _, day := range input.Days {
		weekdays = append(weekdays, day.Weekday)
		rows = append(rows, models.Schedule{
			PitchID:      pitch.ID,
			Weekday:      day.Weekday,
			OpenTime:     day.OpenTime,
			CloseTime:    day.CloseTime,
			PeakHours:    models.EncodeHourSet(day.PeakHours),
			OffPeakHours: models.EncodeHourSet(day.OffPeakHours),
		})
	}

	tx := storage.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("pitch_id = ? AND weekday IN ?", pitch.ID, weekdays).Delete(&models.Schedule{}).Error; err != nil {
		tx.Rollback()
		utils.CreateInternalServerError(ctx)
		return
	}
	if err := tx.Create(&rows).Error; err != nil {
		tx.Rollback()
		utils.CreateInternalServerError(ctx)
		return
	}
	tx.Commit()

	invalidateScheduleCache(pitch.ID)

	ctx.JSON(iris.Map{"success": true, "data": rows})
}

// GetWeeklySchedule serves the pitch's weekly rows, cached briefly in Redis
// because the booking previews hammer this read.
func GetWeeklySchedule(ctx iris.Context) {
	pitchID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid pitch ID.", ctx)
		return
	}

	key := scheduleCacheKey(pitchID)
	if storage.Redis != nil {
		if cached, cacheErr := storage.Redis.Get(context.Background(), key).Result(); cacheErr == nil {
			var rows []models.Schedule
			if json.Unmarshal([]byte(cached), &rows) == nil {
				ctx.JSON(iris.Map{"success": true, "data": rows})
				return
			}
		}
	}

	var rows []models.Schedule
	if err := storage.DB.Where("pitch_id = ?", pitchID).Order("weekday ASC").Find(&rows).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if storage.Redis != nil {
		if raw, marshalErr := json.Marshal(rows); marshalErr == nil {
			storage.Redis.Set(context.Background(), key, raw, scheduleCacheTTL)
		}
	}

	ctx.JSON(iris.Map{"success": true, "data": rows})
}

func CreateScheduleException(ctx iris.Context) {
	pitch := ownedPitch(ctx)
	if pitch == nil {
		return
	}

	var input ScheduleExceptionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.EndDate.Before(input.StartDate) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "endDate must not be before startDate.", ctx)
		return
	}

	targetID := input.TargetID
	if input.TargetType == models.ExceptionTargetPitch {
		targetID = pitch.ID
	} else if !exceptionTargetBelongsToPitch(input.TargetType, targetID, pitch.ID) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Exception target does not belong to the pitch.", ctx)
		return
	}

	exception := models.ScheduleException{
		PitchID:    pitch.ID,
		TargetType: input.TargetType,
		TargetID:   targetID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Reason:     input.Reason,
	}

	if err := storage.DB.Create(&exception).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": exception})
}

func ListScheduleExceptions(ctx iris.Context) {
	pitchID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid pitch ID.", ctx)
		return
	}

	var exceptions []models.ScheduleException
	if err := storage.DB.Where("pitch_id = ?", pitchID).Order("start_date ASC").Find(&exceptions).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": exceptions})
}

func DeleteScheduleException(ctx iris.Context) {
	pitch := ownedPitch(ctx)
	if pitch == nil {
		return
	}

	exceptionID, err := ctx.Params().GetUint("exceptionID")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid exception ID.", ctx)
		return
	}

	result := storage.DB.Where("id = ? AND pitch_id = ?", exceptionID, pitch.ID).Delete(&models.ScheduleException{})
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func exceptionTargetBelongsToPitch(targetType string, targetID, pitchID uint) bool {
	var count int64
	switch targetType {
	case models.ExceptionTargetGround:
		storage.DB.Model(&models.Ground{}).Where("id = ? AND pitch_id = ?", targetID, pitchID).Count(&count)
	case models.ExceptionTargetCombination:
		storage.DB.Model(&models.Combination{}).Where("id = ? AND pitch_id = ?", targetID, pitchID).Count(&count)
	}
	return count > 0
}

func disjointHourSets(a, b []int) bool {
	seen := map[int]bool{}
	for _, h := range a {
		seen[h] = true
	}
	for _, h := range b {
		if seen[h] {
			return false
		}
	}
	return true
}

func scheduleCacheKey(pitchID uint) string {
	return fmt.Sprintf("schedule:pitch:%d", pitchID)
}

func invalidateScheduleCache(pitchID uint) {
	if storage.Redis != nil {
		storage.Redis.Del(context.Background(), scheduleCacheKey(pitchID))
	}
}
