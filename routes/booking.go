package routes

import (
	"errors"
	"log"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/ammarsarhan/hagz-sub001/models"
	"github.com/ammarsarhan/hagz-sub001/services"
	"github.com/ammarsarhan/hagz-sub001/storage"
	"github.com/ammarsarhan/hagz-sub001/utils"
)

// Engine is the booking admissibility orchestrator, wired in main after the
// database is up.
var Engine *services.Engine

type BookingRequest struct {
	PitchID       uint       `json:"pitchID" validate:"required"`
	TargetType    string     `json:"targetType" validate:"required,oneof=GROUND COMBINATION"`
	TargetID      uint       `json:"targetID" validate:"required"`
	StartDate     time.Time  `json:"startDate" validate:"required"`
	EndDate       time.Time  `json:"endDate" validate:"required"`
	PaymentMethod string     `json:"paymentMethod" validate:"omitempty,oneof=CASH CARD WALLET"`
	PaidInFull    bool       `json:"paidInFull"`
	Note          string     `json:"note"`
	Recurrence    *struct {
		Occurrences int        `json:"occurrences" validate:"min=1,max=52"`
		Interval    string     `json:"interval" validate:"required,oneof=ONE_WEEK TWO_WEEK THREE_WEEK ONE_MONTH TWO_MONTH"`
		EndDate     *time.Time `json:"endDate"`
	} `json:"recurrence"`
}

type BookingPreviewRequest struct {
	PitchID    uint      `json:"pitchID" validate:"required"`
	TargetType string    `json:"targetType" validate:"required,oneof=GROUND COMBINATION"`
	TargetID   uint      `json:"targetID" validate:"required"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
}

func CreateBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role, _ := ctx.Values().Get("userRole").(string)

	var request BookingRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !request.EndDate.After(request.StartDate) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "endDate must be after startDate.", ctx)
		return
	}

	input := services.CreateBookingInput{
		PitchID:       request.PitchID,
		TargetType:    request.TargetType,
		TargetID:      request.TargetID,
		UserID:        userID,
		IssuerIsOwner: role == "owner" || role == "admin",
		StartDate:     request.StartDate.UTC(),
		EndDate:       request.EndDate.UTC(),
		PaymentMethod: request.PaymentMethod,
		PaidInFull:    request.PaidInFull,
		Note:          request.Note,
	}
	if request.Recurrence != nil {
		input.Recurrence = &services.RecurrenceInput{
			Occurrences: request.Recurrence.Occurrences,
			Interval:    request.Recurrence.Interval,
			EndDate:     request.Recurrence.EndDate,
		}
	}

	bookings, err := Engine.CreateBooking(ctx.Request().Context(), input)
	if err != nil {
		respondEngineError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	if len(bookings) == 1 {
		ctx.JSON(iris.Map{"success": true, "data": bookings[0]})
		return
	}
	ctx.JSON(iris.Map{"success": true, "data": bookings, "recurrenceGroupID": bookings[0].RecurrenceGroupID})
}

func PreviewBookingPrice(ctx iris.Context) {
	var request BookingPreviewRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	total, err := Engine.PreviewPrice(ctx.Request().Context(), services.PreviewInput{
		PitchID:    request.PitchID,
		TargetType: request.TargetType,
		TargetID:   request.TargetID,
		StartDate:  request.StartDate.UTC(),
		EndDate:    request.EndDate.UTC(),
	})
	if err != nil {
		respondEngineError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": iris.Map{"totalPrice": total}})
}

func PreviewBookingDeadlines(ctx iris.Context) {
	var request BookingPreviewRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	deadlines, err := Engine.PreviewDeadlines(ctx.Request().Context(), services.PreviewInput{
		PitchID:    request.PitchID,
		TargetType: request.TargetType,
		TargetID:   request.TargetID,
		StartDate:  request.StartDate.UTC(),
		EndDate:    request.EndDate.UTC(),
	})
	if err != nil {
		respondEngineError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": deadlines})
}

func GetUserBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var bookings []models.Booking
	if err := storage.DB.Where("user_id = ?", userID).Order("start_date DESC").Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": bookings})
}

func GetPitchBookings(ctx iris.Context) {
	pitch := ownedPitch(ctx)
	if pitch == nil {
		return
	}

	from := ctx.URLParamDefault("from", "")
	query := storage.DB.Where("pitch_id = ?", pitch.ID)
	if from != "" {
		if fromDate, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("start_date >= ?", fromDate)
		}
	}

	var bookings []models.Booking
	if err := query.Order("start_date ASC").Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": bookings})
}

// CancelBooking moves a non-terminal booking to CANCELLED. Cancelling after
// the cancellation deadline incurs the policy's cancellation fee.
func CancelBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid booking ID.", ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.Where("id = ? AND user_id = ?", bookingID, userID).First(&booking).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if booking.IsTerminal() {
		utils.CreateError(iris.StatusConflict, "Conflict", "Booking is already in a terminal state.", ctx)
		return
	}

	var fee float64
	if time.Now().UTC().After(booking.CancellationDeadline) {
		var pitch models.Pitch
		if err := storage.DB.First(&pitch, booking.PitchID).Error; err == nil {
			fee = booking.TotalPrice * pitch.CancellationFeePct / 100
		}
	}

	if err := storage.DB.Model(&booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": booking, "cancellationFee": fee})
}

// respondEngineError maps engine error kinds onto HTTP statuses. NoSchedule
// and persistence failures indicate upstream data problems and map to 500.
func respondEngineError(ctx iris.Context, err error) {
	var bookingErr *services.BookingError
	if !errors.As(err, &bookingErr) {
		if errors.Is(err, services.ErrDeadlineConfig) {
			log.Printf("booking engine: %v", err)
			utils.CreateInternalServerError(ctx)
			return
		}
		log.Printf("booking engine: unexpected error: %v", err)
		utils.CreateInternalServerError(ctx)
		return
	}

	status := iris.StatusBadRequest
	switch bookingErr.Kind {
	case services.ErrKindInvalidTarget:
		status = iris.StatusNotFound
	case services.ErrKindSlotTaken:
		status = iris.StatusConflict
	case services.ErrKindNoSchedule, services.ErrKindPersistenceFailure:
		log.Printf("booking engine: %v", bookingErr)
		status = iris.StatusInternalServerError
	}

	ctx.StopWithJSON(status, iris.Map{
		"title":  bookingErr.Kind,
		"field":  bookingErr.Field,
		"detail": bookingErr.Detail,
	})
}
