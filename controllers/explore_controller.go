package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"myplan-backend/config"
	"myplan-backend/middleware"
	"myplan-backend/models"
	"myplan-backend/utils"
)

const (
	featuredLimit        = 8
	recommendationsLimit = 6
)

var exploreCategories = []string{
	"Music", "Tech", "Sports", "Cultural", "Food", "Art", "Business", "Education",
}

type exploreCard struct {
	ID            uint     `json:"id"`
	Title         string   `json:"title"`
	Type          string   `json:"type"`
	TypeIcon      string   `json:"type_icon"`
	Location      string   `json:"location,omitempty"`
	PriceLabel    string   `json:"price_label"`
	Image         string   `json:"image,omitempty"`
	AverageRating float64  `json:"average_rating"`
	ReviewCount   int64    `json:"review_count"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
}

func toExploreCard(e *models.Experience, avgRating float64, reviewCount int64) exploreCard {
	card := exploreCard{
		ID:            e.ID,
		Title:         e.Title,
		Type:          e.Type,
		TypeIcon:      utils.CategoryIcon(e.Type),
		Location:      e.Location,
		PriceLabel:    utils.PriceLabel(e.MinPrice),
		AverageRating: avgRating,
		ReviewCount:   reviewCount,
		Lat:           e.Lat,
		Lng:           e.Lng,
	}
	if len(e.Images) > 0 {
		card.Image = e.Images[0].Attachment
	}
	return card
}

func ratingFor(experienceID uint) (float64, int64) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := config.DB.Model(&models.Review{}).
		Where("experience_id = ?", experienceID).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Scan(&row).Error
	if err != nil {
		log.Printf("rating summary for experience %d: %v", experienceID, err)
	}
	return row.Avg, row.Count
}

// Explore is the public discovery feed: top-rated featured experiences,
// random recommendations, the category strip, and an optional filtered
// result set when ?search=, ?category=, ?weekend=, ?near_me= or ?popular=
// are present.
func Explore(c *gin.Context) {
	today := time.Now().Truncate(24 * time.Hour)

	var featuredRows []struct {
		ID uint
	}
	err := config.DB.Raw(`
		SELECT e.id
		FROM experiences e
		LEFT JOIN reviews r ON r.experience_id = e.id
		WHERE e.end_date IS NULL OR e.end_date >= ?
		GROUP BY e.id
		ORDER BY COALESCE(AVG(r.rating), 0) DESC, COUNT(r.id) DESC
		LIMIT ?`, today, featuredLimit).
		Scan(&featuredRows).Error
	if err != nil {
		utils.RespondServiceError(c, err, "explore featured")
		return
	}

	featured := make([]exploreCard, 0, len(featuredRows))
	featuredIDs := make([]uint, 0, len(featuredRows))
	for _, row := range featuredRows {
		featuredIDs = append(featuredIDs, row.ID)
	}
	if len(featuredIDs) > 0 {
		var experiences []models.Experience
		if err := config.DB.Preload("Images").
			Where("id IN ?", featuredIDs).
			Find(&experiences).Error; err != nil {
			utils.RespondServiceError(c, err, "explore featured load")
			return
		}
		byID := make(map[uint]*models.Experience, len(experiences))
		for i := range experiences {
			byID[experiences[i].ID] = &experiences[i]
		}
		// Preserve the rating order from the ranking query.
		for _, id := range featuredIDs {
			if e, ok := byID[id]; ok {
				avg, count := ratingFor(e.ID)
				featured = append(featured, toExploreCard(e, avg, count))
			}
		}
	}

	var recommended []models.Experience
	if err := config.DB.Preload("Images").
		Order("RAND()").
		Limit(recommendationsLimit).
		Find(&recommended).Error; err != nil {
		utils.RespondServiceError(c, err, "explore recommendations")
		return
	}
	recommendations := make([]exploreCard, 0, len(recommended))
	for i := range recommended {
		avg, count := ratingFor(recommended[i].ID)
		recommendations = append(recommendations, toExploreCard(&recommended[i], avg, count))
	}

	categories := make([]gin.H, 0, len(exploreCategories))
	for _, cat := range exploreCategories {
		categories = append(categories, gin.H{
			"name": cat,
			"icon": utils.CategoryIcon(cat),
		})
	}

	response := gin.H{
		"featured":        featured,
		"recommendations": recommendations,
		"categories":      categories,
	}

	if results, matched, err := exploreFiltered(c, today); err != nil {
		utils.RespondServiceError(c, err, "explore filter")
		return
	} else if matched {
		response["results"] = results
	}

	utils.JSONSuccess(c, http.StatusOK, response)
}

// exploreFiltered runs the optional filter query. matched is false when the
// request carried no filter parameters at all.
func exploreFiltered(c *gin.Context, today time.Time) ([]exploreCard, bool, error) {
	search := strings.TrimSpace(c.Query("search"))
	category := strings.TrimSpace(c.Query("category"))
	weekend := c.Query("weekend") != ""
	popular := c.Query("popular") != ""
	nearMe := c.Query("near_me") != ""

	if search == "" && category == "" && !weekend && !popular && !nearMe {
		return nil, false, nil
	}

	query := config.DB.Model(&models.Experience{}).Preload("Images").
		Where("end_date IS NULL OR end_date >= ?", today)

	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR location LIKE ?", like, like, like)
	}
	if category != "" {
		query = query.Where("type = ?", category)
	}
	if weekend {
		// MySQL DAYOFWEEK: 1=Sunday, 6=Friday, 7=Saturday.
		query = query.Where("start_date IS NOT NULL AND DAYOFWEEK(start_date) IN (6, 7)")
	}
	if nearMe {
		lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
		lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
		if latErr == nil && lngErr == nil {
			// Roughly a city-sized bounding box.
			query = query.Where("lat BETWEEN ? AND ? AND lng BETWEEN ? AND ?",
				lat-0.5, lat+0.5, lng-0.5, lng+0.5)
		}
	}

	var experiences []models.Experience
	if popular {
		var ids []uint
		sub := config.DB.Model(&models.Booking{}).
			Select("experience_id").
			Group("experience_id").
			Order("COUNT(*) DESC").
			Limit(50)
		if err := sub.Pluck("experience_id", &ids).Error; err != nil {
			return nil, true, err
		}
		if len(ids) == 0 {
			return []exploreCard{}, true, nil
		}
		query = query.Where("id IN ?", ids)
	}

	if err := query.Order("start_date IS NULL, start_date").Limit(30).
		Find(&experiences).Error; err != nil {
		return nil, true, err
	}

	cards := make([]exploreCard, 0, len(experiences))
	for i := range experiences {
		avg, count := ratingFor(experiences[i].ID)
		cards = append(cards, toExploreCard(&experiences[i], avg, count))
	}
	return cards, true, nil
}

// friendIDs returns the visitors connected to visitorID through accepted
// invitations, in either direction.
func friendIDs(visitorID uint) ([]uint, error) {
	var invites []models.FriendInvitation
	err := config.DB.
		Where("status = ? AND (visitor_id = ? OR receiver_id = ?)",
			models.InvitationAccepted, visitorID, visitorID).
		Find(&invites).Error
	if err != nil {
		return nil, err
	}

	seen := map[uint]bool{}
	var ids []uint
	for _, inv := range invites {
		if inv.VisitorID != visitorID && !seen[inv.VisitorID] {
			seen[inv.VisitorID] = true
			ids = append(ids, inv.VisitorID)
		}
		if inv.ReceiverID != nil && *inv.ReceiverID != visitorID && !seen[*inv.ReceiverID] {
			seen[*inv.ReceiverID] = true
			ids = append(ids, *inv.ReceiverID)
		}
	}
	return ids, nil
}

// FriendsHighlights is the social feed: recent highlights from the visitor's
// friends with human-readable timestamps.
func FriendsHighlights(c *gin.Context) {
	ids, err := friendIDs(middleware.VisitorID(c))
	if err != nil {
		utils.RespondServiceError(c, err, "friends lookup")
		return
	}
	if len(ids) == 0 {
		utils.JSONSuccess(c, http.StatusOK, []gin.H{})
		return
	}

	var highlights []models.Highlight
	if err := config.DB.
		Preload("Visitor").Preload("Visitor.User").
		Where("visitor_id IN ?", ids).
		Order("added_at DESC").
		Limit(30).
		Find(&highlights).Error; err != nil {
		utils.RespondServiceError(c, err, "friends highlights")
		return
	}

	now := time.Now()
	feed := make([]gin.H, 0, len(highlights))
	for i := range highlights {
		h := &highlights[i]
		_, name := h.AuthorDisplay()
		posted := h.AddedAt
		feed = append(feed, gin.H{
			"id":        h.ID,
			"title":     h.Title,
			"content":   h.Content,
			"image":     h.Image,
			"author":    name,
			"initials":  utils.Initials(name),
			"posted":    utils.RelativeTime(&posted, now),
			"posted_at": h.AddedAt,
		})
	}

	utils.JSONSuccess(c, http.StatusOK, feed)
}

// FriendsList returns the visitor's accepted friends.
func FriendsList(c *gin.Context) {
	ids, err := friendIDs(middleware.VisitorID(c))
	if err != nil {
		utils.RespondServiceError(c, err, "friends lookup")
		return
	}
	if len(ids) == 0 {
		utils.JSONSuccess(c, http.StatusOK, []gin.H{})
		return
	}

	var visitors []models.Visitor
	if err := config.DB.Preload("User").
		Where("id IN ?", ids).
		Find(&visitors).Error; err != nil {
		utils.RespondServiceError(c, err, "friends load")
		return
	}

	friends := make([]gin.H, 0, len(visitors))
	for i := range visitors {
		v := &visitors[i]

		var confirmedBookings int64
		if err := config.DB.Model(&models.Booking{}).
			Where("visitor_id = ? AND status = ?", v.ID, models.BookingConfirmed).
			Count(&confirmedBookings).Error; err != nil {
			log.Printf("confirmed booking count for visitor %d: %v", v.ID, err)
		}

		friends = append(friends, gin.H{
			"visitor_id":         v.ID,
			"full_name":          v.FullName(),
			"initials":           utils.Initials(v.FullName()),
			"image":              v.User.Image,
			"confirmed_bookings": confirmedBookings,
		})
	}

	utils.JSONSuccess(c, http.StatusOK, friends)
}
