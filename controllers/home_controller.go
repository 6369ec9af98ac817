package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"myplan-backend/config"
	"myplan-backend/models"
	"myplan-backend/utils"
)

const homeUpcomingLimit = 6

// Fallback coordinates for experiences stored without lat/lng, keyed on a
// lowercase substring of the location text.
var cityCoordinates = map[string][2]float64{
	"riyadh":  {24.7136, 46.6753},
	"jeddah":  {21.4858, 39.1925},
	"dammam":  {26.4207, 50.0888},
	"mecca":   {21.3891, 39.8579},
	"medina":  {24.5247, 39.5692},
	"alula":   {26.6086, 37.9234},
	"abha":    {18.2164, 42.5053},
	"taif":    {21.2703, 40.4158},
	"khobar":  {26.2172, 50.1971},
	"tabuk":   {28.3838, 36.5550},
}

func lookupCoordinates(location string) (float64, float64, bool) {
	lower := strings.ToLower(location)
	for city, coords := range cityCoordinates {
		if strings.Contains(lower, city) {
			return coords[0], coords[1], true
		}
	}
	return 0, 0, false
}

// Home returns the landing page payload: the next upcoming experiences with
// price labels and first images.
func Home(c *gin.Context) {
	today := time.Now().Truncate(24 * time.Hour)

	var experiences []models.Experience
	if err := config.DB.Preload("Images").
		Where("start_date IS NULL OR start_date >= ?", today).
		Order("start_date IS NULL, start_date").
		Limit(homeUpcomingLimit).
		Find(&experiences).Error; err != nil {
		utils.RespondServiceError(c, err, "home upcoming")
		return
	}

	upcoming := make([]gin.H, 0, len(experiences))
	for i := range experiences {
		e := &experiences[i]
		image := ""
		if len(e.Images) > 0 {
			image = e.Images[0].Attachment
		}
		avg, reviewCount := ratingFor(e.ID)
		upcoming = append(upcoming, gin.H{
			"id":             e.ID,
			"title":          e.Title,
			"type":           e.Type,
			"type_icon":      utils.CategoryIcon(e.Type),
			"location":       e.Location,
			"price_label":    utils.PriceLabel(e.MinPrice),
			"start_date":     utils.FormatDate(e.StartDate),
			"image":          image,
			"average_rating": avg,
			"review_count":   reviewCount,
		})
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"upcoming": upcoming})
}

// HomeMap returns map pins for every locatable experience. Experiences
// without stored coordinates fall back to the city table; the rest are
// skipped rather than pinned at 0,0.
func HomeMap(c *gin.Context) {
	var experiences []models.Experience
	if err := config.DB.Find(&experiences).Error; err != nil {
		utils.RespondServiceError(c, err, "home map")
		return
	}

	pins := make([]gin.H, 0, len(experiences))
	for i := range experiences {
		e := &experiences[i]

		var lat, lng float64
		switch {
		case e.Lat != nil && e.Lng != nil:
			lat, lng = *e.Lat, *e.Lng
		default:
			var ok bool
			lat, lng, ok = lookupCoordinates(e.Location)
			if !ok {
				continue
			}
		}

		pins = append(pins, gin.H{
			"id":          e.ID,
			"title":       e.Title,
			"type":        e.Type,
			"type_icon":   utils.CategoryIcon(e.Type),
			"location":    e.Location,
			"price_label": utils.PriceLabel(e.MinPrice),
			"lat":         lat,
			"lng":         lng,
		})
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"pins": pins})
}
