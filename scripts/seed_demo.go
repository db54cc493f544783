//go:build ignore

// Seeds a demo pitch with two grounds, a combination and a full week of
// schedules. Run with: go run scripts/seed_demo.go
package main

import (
	"log"

	"github.com/ammarsarhan/hagz-sub001/models"
	"github.com/ammarsarhan/hagz-sub001/storage"
)

func main() {
	db := storage.InitializeDB()

	owner := models.User{
		FirstName: "Demo",
		LastName:  "Owner",
		Email:     "owner@hagz.local",
		Password:  "$2a$10$demo.seed.hash.not.usable.for.login.purposes",
		Role:      "owner",
	}
	if err := db.Where("email = ?", owner.Email).FirstOrCreate(&owner).Error; err != nil {
		log.Fatal(err)
	}

	turfPrice := 120.0
	pitch := models.Pitch{
		OwnerID:              owner.ID,
		Name:                 "Nile Valley Sports Park",
		City:                 "Cairo",
		Country:              "EG",
		Status:               models.PitchStatusLive,
		BasePrice:            100,
		MinBookingHours:      1,
		MaxBookingHours:      4,
		AdvanceBooking:       2,
		PaymentDeadline:      4,
		CancellationGrace:    1,
		CancellationFeePct:   25,
		NoShowFeePct:         50,
		PeakHourSurchargePct: 10,
		OffPeakDiscountPct:   15,
		AutomaticApproval:    true,
	}
	if err := db.Where("name = ?", pitch.Name).FirstOrCreate(&pitch).Error; err != nil {
		log.Fatal(err)
	}

	grounds := []models.Ground{
		{PitchID: pitch.ID, Name: "Ground A", Status: models.GroundStatusLive, Surface: "turf", Size: "5-a-side"},
		{PitchID: pitch.ID, Name: "Ground B", Status: models.GroundStatusLive, Surface: "turf", Size: "5-a-side",
			SettingsOverride: models.SettingsOverride{Price: &turfPrice}},
	}
	for i := range grounds {
		if err := db.Where("pitch_id = ? AND name = ?", pitch.ID, grounds[i].Name).FirstOrCreate(&grounds[i]).Error; err != nil {
			log.Fatal(err)
		}
	}

	combination := models.Combination{
		PitchID: pitch.ID,
		Name:    "Full Field",
		Grounds: grounds,
	}
	if err := db.Where("pitch_id = ? AND name = ?", pitch.ID, combination.Name).FirstOrCreate(&combination).Error; err != nil {
		log.Fatal(err)
	}

	for weekday := 0; weekday < 7; weekday++ {
		row := models.Schedule{
			PitchID:      pitch.ID,
			Weekday:      weekday,
			OpenTime:     8,
			CloseTime:    22,
			PeakHours:    models.EncodeHourSet([]int{18, 19, 20}),
			OffPeakHours: models.EncodeHourSet([]int{8, 9, 10}),
		}
		if err := db.Where("pitch_id = ? AND weekday = ?", pitch.ID, weekday).FirstOrCreate(&row).Error; err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("seeded pitch %d with %d grounds", pitch.ID, len(grounds))
}
