package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"myplan-backend/services"
	"myplan-backend/utils"
)

// ReportController serves the admin dashboard and the date-ranged report
// generator.
type ReportController struct {
	Service *services.ReportService
}

func NewReportController(service *services.ReportService) *ReportController {
	return &ReportController{Service: service}
}

// Dashboard returns the whole dashboard payload: totals, growth deltas, the
// monthly revenue series, distributions and recent activity.
func (rc *ReportController) Dashboard(c *gin.Context) {
	data, err := rc.Service.Dashboard(time.Now())
	if err != nil {
		utils.RespondServiceError(c, err, "dashboard")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, data)
}

// Overview is the lightweight stats strip: totals plus growth only.
func (rc *ReportController) Overview(c *gin.Context) {
	now := time.Now()

	revenueGrowth, err := rc.Service.RevenueGrowth(now)
	if err != nil {
		utils.RespondServiceError(c, err, "overview revenue growth")
		return
	}
	bookingGrowth, err := rc.Service.BookingGrowth(now)
	if err != nil {
		utils.RespondServiceError(c, err, "overview booking growth")
		return
	}
	userGrowth, err := rc.Service.UserGrowth(now)
	if err != nil {
		utils.RespondServiceError(c, err, "overview user growth")
		return
	}
	registrations, err := rc.Service.UsersReport(now.AddDate(0, 0, -30), now)
	if err != nil {
		utils.RespondServiceError(c, err, "overview registrations")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"revenue_growth":     revenueGrowth,
		"booking_growth":     bookingGrowth,
		"user_growth":        userGrowth,
		"registration_trend": registrations,
	})
}

// reportRange parses ?start=&end= (YYYY-MM-DD), defaulting to the last 30
// days ending today.
func reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	start := now.AddDate(0, 0, -30)
	end := now

	if v := c.Query("start"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "start must be YYYY-MM-DD")
			return start, end, false
		}
		start = parsed
	}
	if v := c.Query("end"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "end must be YYYY-MM-DD")
			return start, end, false
		}
		end = parsed
	}
	if end.Before(start) {
		utils.JSONError(c, http.StatusBadRequest, "end must not be before start")
		return start, end, false
	}
	return start, end, true
}

// Generate builds one report over a date range. ?type= selects revenue,
// bookings, users or experiences.
func (rc *ReportController) Generate(c *gin.Context) {
	start, end, ok := reportRange(c)
	if !ok {
		return
	}

	reportType := c.DefaultQuery("type", "revenue")

	var (
		rows interface{}
		err  error
	)
	switch reportType {
	case "revenue":
		rows, err = rc.Service.RevenueReport(start, end)
	case "bookings":
		rows, err = rc.Service.BookingsReport(start, end)
	case "users":
		rows, err = rc.Service.UsersReport(start, end)
	case "experiences":
		rows, err = rc.Service.ExperiencesReport(start, end)
	default:
		utils.JSONError(c, http.StatusBadRequest,
			"type must be revenue, bookings, users or experiences")
		return
	}
	if err != nil {
		utils.RespondServiceError(c, err, "report generate")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"type":  reportType,
		"start": start.Format("2006-01-02"),
		"end":   end.Format("2006-01-02"),
		"rows":  rows,
	})
}
