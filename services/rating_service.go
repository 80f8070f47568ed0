package services

import (
	"math"

	"github.com/rithika04/salon_spot/database"
	"github.com/rithika04/salon_spot/models"
)

type ShopRating struct {
	ParlorEmail   string  `json:"parlor_email"`
	AverageRating float64 `json:"average_rating"`
	CountPeople   int     `json:"count_people"`
}

// RecomputeShopRating gathers every rated booking for the shop across all
// user accounts, averages the ratings and overwrites the derived fields on
// the shop row. It is a pure read-then-overwrite, safe to rerun at any time.
func RecomputeShopRating(parlorEmail string) (*ShopRating, error) {
	var result struct {
		Avg   float64
		Count int
	}

	err := database.DB.Model(&models.Booking{}).
		Where("parlor_email = ? AND user_rating IS NOT NULL", parlorEmail).
		Select("COALESCE(AVG(user_rating), 0) as avg, COUNT(user_rating) as count").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	average := math.Round(result.Avg*100) / 100

	err = database.DB.Model(&models.Shop{}).
		Where("email = ?", parlorEmail).
		Updates(map[string]interface{}{"rating": average, "count_people": result.Count}).Error
	if err != nil {
		return nil, err
	}

	return &ShopRating{
		ParlorEmail:   parlorEmail,
		AverageRating: average,
		CountPeople:   result.Count,
	}, nil
}
