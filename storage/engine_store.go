package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ammarsarhan/hagz-sub001/models"
	"github.com/ammarsarhan/hagz-sub001/services"
)

// EngineStore is the gorm-backed persistence collaborator of the booking
// engine. One orchestration call runs entirely inside InTx, so the overlap
// query and the subsequent insert are a single atomic unit.
type EngineStore struct {
	db *gorm.DB
}

func NewEngineStore(db *gorm.DB) *EngineStore {
	return &EngineStore{db: db}
}

func (s *EngineStore) PitchByID(ctx context.Context, id uint) (*models.Pitch, error) {
	var pitch models.Pitch
	if err := s.db.WithContext(ctx).First(&pitch, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &pitch, nil
}

func (s *EngineStore) GroundByID(ctx context.Context, pitchID, id uint) (*models.Ground, error) {
	var ground models.Ground
	if err := s.db.WithContext(ctx).First(&ground, "id = ? AND pitch_id = ?", id, pitchID).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &ground, nil
}

func (s *EngineStore) CombinationByID(ctx context.Context, pitchID, id uint) (*models.Combination, error) {
	var combination models.Combination
	if err := s.db.WithContext(ctx).Preload("Grounds").First(&combination, "id = ? AND pitch_id = ?", id, pitchID).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &combination, nil
}

// OverlappingBookings finds unavailable-status bookings whose occupied
// grounds intersect groundIDs and whose half-open range overlaps [start, end).
// Candidate rows are locked so two concurrent requests for the same slot
// cannot both pass the check within their transactions.
func (s *EngineStore) OverlappingBookings(ctx context.Context, groundIDs []uint, start, end time.Time) ([]services.SlotConflict, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status IN ?", models.UnavailableBookingStatuses).
		Where("start_date < ? AND end_date > ?", end, start).
		Where(
			s.db.Where("target_type = ? AND target_id IN ?", models.BookingTargetGround, groundIDs).
				Or("target_type = ? AND target_id IN (?)", models.BookingTargetCombination,
					s.db.Table("combination_grounds").Select("combination_id").Where("ground_id IN ?", groundIDs)),
		).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	conflicts := make([]services.SlotConflict, 0, len(bookings))
	for i := range bookings {
		occupied, err := s.occupiedGroundIDs(ctx, &bookings[i])
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, services.SlotConflict{
			Reference: bookings[i].Reference,
			Status:    bookings[i].Status,
			GroundIDs: occupied,
			StartDate: bookings[i].StartDate,
			EndDate:   bookings[i].EndDate,
		})
	}
	return conflicts, nil
}

// occupiedGroundIDs expands a booking's target to the grounds it occupies: a
// ground booking occupies itself, a combination booking every member ground.
func (s *EngineStore) occupiedGroundIDs(ctx context.Context, booking *models.Booking) ([]uint, error) {
	if booking.TargetType == models.BookingTargetGround {
		return []uint{booking.TargetID}, nil
	}
	var ids []uint
	err := s.db.WithContext(ctx).
		Table("combination_grounds").
		Where("combination_id = ?", booking.TargetID).
		Pluck("ground_id", &ids).Error
	return ids, err
}

func (s *EngineStore) ExceptionInRange(ctx context.Context, targetType string, targetIDs []uint, start, end time.Time) (*models.ScheduleException, error) {
	var exception models.ScheduleException
	err := s.db.WithContext(ctx).
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Where("start_date <= ? AND end_date >= ?", end, start).
		First(&exception).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &exception, nil
}

func (s *EngineStore) SchedulesByWeekday(ctx context.Context, pitchID uint, weekdays []int) (map[int]*models.Schedule, error) {
	var rows []models.Schedule
	err := s.db.WithContext(ctx).
		Where("pitch_id = ? AND weekday IN ?", pitchID, weekdays).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[int]*models.Schedule, len(rows))
	for i := range rows {
		out[rows[i].Weekday] = &rows[i]
	}
	return out, nil
}

func (s *EngineStore) InsertBooking(ctx context.Context, booking *models.Booking) error {
	err := s.db.WithContext(ctx).Create(booking).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return services.ErrDuplicateReference
	}
	return err
}

func (s *EngineStore) InTx(ctx context.Context, fn func(tx services.EngineStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&EngineStore{db: tx})
	})
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return services.ErrNotFound
	}
	return err
}
