package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/ammarsarhan/hagz-sub001/models"
	"github.com/ammarsarhan/hagz-sub001/storage"
	"github.com/ammarsarhan/hagz-sub001/utils"
)

type PitchInput struct {
	Name         string  `json:"name" validate:"required,max=256"`
	Description  string  `json:"description"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 string  `json:"addressLine2"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
	Lat          float32 `json:"lat"`
	Lng          float32 `json:"lng"`
	BasePrice    float64 `json:"basePrice" validate:"required,min=0"`

	MinBookingHours      int     `json:"minBookingHours" validate:"min=1"`
	MaxBookingHours      int     `json:"maxBookingHours" validate:"min=1"`
	AdvanceBooking       float64 `json:"advanceBooking" validate:"min=0"`
	PaymentDeadline      float64 `json:"paymentDeadline" validate:"min=0"`
	CancellationGrace    float64 `json:"cancellationGrace" validate:"min=0"`
	CancellationFeePct   float64 `json:"cancellationFeePct" validate:"min=0,max=100"`
	NoShowFeePct         float64 `json:"noShowFeePct" validate:"min=0,max=100"`
	PeakHourSurchargePct float64 `json:"peakHourSurchargePct" validate:"min=0,max=100"`
	OffPeakDiscountPct   float64 `json:"offPeakDiscountPct" validate:"min=0,max=100"`
	AutomaticApproval    bool    `json:"automaticApproval"`
}

type GroundInput struct {
	Name    string `json:"name" validate:"required,max=256"`
	Surface string `json:"surface"`
	Size    string `json:"size"`

	models.SettingsOverride
}

type CombinationInput struct {
	Name      string `json:"name" validate:"required,max=256"`
	GroundIDs []uint `json:"groundIDs" validate:"required,min=2"`

	models.SettingsOverride
}

func CreatePitch(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input PitchInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.MinBookingHours > input.MaxBookingHours {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "minBookingHours cannot exceed maxBookingHours.", ctx)
		return
	}

	pitch := models.Pitch{
		OwnerID:              userID,
		Name:                 input.Name,
		Description:          input.Description,
		AddressLine1:         input.AddressLine1,
		AddressLine2:         input.AddressLine2,
		City:                 input.City,
		State:                input.State,
		Country:              input.Country,
		Lat:                  input.Lat,
		Lng:                  input.Lng,
		Status:               models.PitchStatusDraft,
		BasePrice:            input.BasePrice,
		MinBookingHours:      input.MinBookingHours,
		MaxBookingHours:      input.MaxBookingHours,
		AdvanceBooking:       input.AdvanceBooking,
		PaymentDeadline:      input.PaymentDeadline,
		CancellationGrace:    input.CancellationGrace,
		CancellationFeePct:   input.CancellationFeePct,
		NoShowFeePct:         input.NoShowFeePct,
		PeakHourSurchargePct: input.PeakHourSurchargePct,
		OffPeakDiscountPct:   input.OffPeakDiscountPct,
		AutomaticApproval:    input.AutomaticApproval,
	}

	if err := storage.DB.Create(&pitch).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": pitch})
}

func GetPitch(ctx iris.Context) {
	pitchID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid pitch ID.", ctx)
		return
	}

	var pitch models.Pitch
	result := storage.DB.
		Preload("Grounds").
		Preload("Combinations.Grounds").
		Preload("Schedules").
		First(&pitch, pitchID)
	if result.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": pitch})
}

func ListPitches(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("perPage", 20)
	if perPage <= 0 || perPage > 50 {
		perPage = 20
	}
	city := ctx.URLParamDefault("city", "")

	query := storage.DB.Model(&models.Pitch{}).Where("status = ?", models.PitchStatusLive)
	if city != "" {
		query = query.Where("lower(city) = lower(?)", city)
	}

	var total int64
	query.Count(&total)

	var pitches []models.Pitch
	if err := query.Limit(perPage).Offset((page - 1) * perPage).Find(&pitches).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, pitches, page, perPage, total)
}

func UpdatePitch(ctx iris.Context) {
	pitch := ownedPitch(ctx)
	if pitch == nil {
		return
	}

	var input PitchInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.MinBookingHours > input.MaxBookingHours {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "minBookingHours cannot exceed maxBookingHours.", ctx)
		return
	}

	updates := map[string]interface{}{
		"name":                    input.Name,
		"description":             input.Description,
		"address_line1":           input.AddressLine1,
		"address_line2":           input.AddressLine2,
		"city":                    input.City,
		"state":                   input.State,
		"country":                 input.Country,
		"lat":                     input.Lat,
		"lng":                     input.Lng,
		"base_price":              input.BasePrice,
		"min_booking_hours":       input.MinBookingHours,
		"max_booking_hours":       input.MaxBookingHours,
		"advance_booking":         input.AdvanceBooking,
		"payment_deadline":        input.PaymentDeadline,
		"cancellation_grace":      input.CancellationGrace,
		"cancellation_fee_pct":    input.CancellationFeePct,
		"no_show_fee_pct":         input.NoShowFeePct,
		"peak_hour_surcharge_pct": input.PeakHourSurchargePct,
		"off_peak_discount_pct":   input.OffPeakDiscountPct,
		"automatic_approval":      input.AutomaticApproval,
	}

	if err := storage.DB.Model(pitch).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": pitch})
}

func CreateGround(ctx iris.Context) {
	pitch := ownedPitch(ctx)
	if pitch == nil {
		return
	}

	var input GroundInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !validOverrideBounds(&input.SettingsOverride, pitch) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "minBookingHours cannot exceed maxBookingHours after override.", ctx)
		return
	}

	ground := models.Ground{
		PitchID:          pitch.ID,
		Name:             input.Name,
		Status:           models.GroundStatusLive,
		Surface:          input.Surface,
		Size:             input.Size,
		SettingsOverride: input.SettingsOverride,
	}

	if err := storage.DB.Create(&ground).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": ground})
}

func UpdateGroundStatus(ctx iris.Context) {
	pitch := ownedPitch(ctx)
	if pitch == nil {
		return
	}

	groundID, err := ctx.Params().GetUint("groundID")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid ground ID.", ctx)
		return
	}

	var input struct {
		Status string `json:"status" validate:"required,oneof=LIVE INACTIVE"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var ground models.Ground
	if err := storage.DB.Where("id = ? AND pitch_id = ?", groundID, pitch.ID).First(&ground).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := storage.DB.Model(&ground).Update("status", input.Status).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": ground})
}

func CreateCombination(ctx iris.Context) {
	pitch := ownedPitch(ctx)
	if pitch == nil {
		return
	}

	var input CombinationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !validOverrideBounds(&input.SettingsOverride, pitch) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "minBookingHours cannot exceed maxBookingHours after override.", ctx)
		return
	}

	// Every member ground must belong to this pitch.
	var grounds []models.Ground
	if err := storage.DB.Where("id IN ? AND pitch_id = ?", input.GroundIDs, pitch.ID).Find(&grounds).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if len(grounds) != len(input.GroundIDs) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "All member grounds must belong to the pitch.", ctx)
		return
	}

	combination := models.Combination{
		PitchID:          pitch.ID,
		Name:             input.Name,
		Grounds:          grounds,
		SettingsOverride: input.SettingsOverride,
	}

	if err := storage.DB.Create(&combination).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": combination})
}

// SubmitPitch moves a draft pitch into the live state. The approval workflow
// in front of this is handled by the admin surface.
func SubmitPitch(ctx iris.Context) {
	pitch := ownedPitch(ctx)
	if pitch == nil {
		return
	}

	if pitch.Status != models.PitchStatusDraft && pitch.Status != models.PitchStatusSuspended {
		utils.CreateError(iris.StatusConflict, "Conflict", "Pitch cannot go live from its current status.", ctx)
		return
	}

	var groundCount int64
	storage.DB.Model(&models.Ground{}).Where("pitch_id = ?", pitch.ID).Count(&groundCount)
	if groundCount == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "A pitch needs at least one ground before going live.", ctx)
		return
	}

	if err := storage.DB.Model(pitch).Update("status", models.PitchStatusLive).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": pitch})
}

// AdminSuspendPitch suspends or reinstates a pitch; audit-logged.
func AdminSuspendPitch(ctx iris.Context) {
	pitchID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid pitch ID.", ctx)
		return
	}

	var input struct {
		Status string `json:"status" validate:"required,oneof=LIVE SUSPENDED ARCHIVED"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var pitch models.Pitch
	if err := storage.DB.First(&pitch, pitchID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := pitch.Status
	if err := storage.DB.Model(&pitch).Update("status", input.Status).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "pitch.status."+input.Status, "pitch", pitch.ID,
		iris.Map{"status": before}, iris.Map{"status": input.Status})

	ctx.JSON(iris.Map{"success": true, "data": pitch})
}

// ownedPitch loads the {id} pitch and verifies the requester owns it. Writes
// the error response and returns nil when the check fails.
func ownedPitch(ctx iris.Context) *models.Pitch {
	userID := ctx.Values().Get("userID").(uint)

	pitchID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid pitch ID.", ctx)
		return nil
	}

	var pitch models.Pitch
	if err := storage.DB.Where("id = ? AND owner_id = ?", pitchID, userID).First(&pitch).Error; err != nil {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Pitch not found or access denied.", ctx)
		return nil
	}
	return &pitch
}

// validOverrideBounds checks min <= max still holds once the override is laid
// over the pitch policy, so the engine can assume it later.
func validOverrideBounds(o *models.SettingsOverride, pitch *models.Pitch) bool {
	min := pitch.MinBookingHours
	max := pitch.MaxBookingHours
	if o.MinBookingHours != nil {
		min = *o.MinBookingHours
	}
	if o.MaxBookingHours != nil {
		max = *o.MaxBookingHours
	}
	return min <= max
}
