package services

import (
	"time"

	"gorm.io/gorm"

	"myplan-backend/models"
)

// ReportService computes the admin dashboard aggregates and the date-ranged
// reports. All revenue figures count Paid payments only.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// Growth is the month-over-month percentage change. A zero previous period
// reads as 100% when anything happened this period and 0% otherwise.
func Growth(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// MonthlyPoint is one month of the dashboard revenue series.
type MonthlyPoint struct {
	Month   int     `json:"month"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

// CategoryCount is one slice of the category distribution chart.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// StatusCount is one slice of the booking status chart.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// TopExperience is one row of the top-performers table.
type TopExperience struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	TotalBookings int64   `json:"total_bookings"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// DailyPoint is one day of a date-ranged report series.
type DailyPoint struct {
	Date    string  `json:"date"`
	Count   int64   `json:"count"`
	Amount  float64 `json:"amount"`
	Tickets int64   `json:"tickets,omitempty"`
}

// ExperienceReportRow is one experience in the experiences report.
type ExperienceReportRow struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	TotalBookings int64   `json:"total_bookings"`
	TotalRevenue  float64 `json:"total_revenue"`
	ReviewCount   int64   `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// DashboardData is everything the admin dashboard renders in one request.
type DashboardData struct {
	TotalRevenue      float64          `json:"total_revenue"`
	TotalBookings     int64            `json:"total_bookings"`
	ConfirmedBookings int64            `json:"confirmed_bookings"`
	TotalUsers        int64            `json:"total_users"`
	TotalExperiences  int64            `json:"total_experiences"`
	RevenueGrowth     float64          `json:"revenue_growth"`
	BookingGrowth     float64          `json:"booking_growth"`
	UserGrowth        float64          `json:"user_growth"`
	MonthlyRevenue    []MonthlyPoint   `json:"monthly_revenue"`
	Categories        []CategoryCount  `json:"categories"`
	BookingStatuses   []StatusCount    `json:"booking_statuses"`
	TopExperiences    []TopExperience  `json:"top_experiences"`
	RecentBookings    []models.Booking `json:"recent_bookings"`
	RecentPayments    []models.Payment `json:"recent_payments"`
}

var monthLabels = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// FillMonthlySeries expands a sparse month->revenue map into the dense
// January through December series the chart expects.
func FillMonthlySeries(byMonth map[int]float64) []MonthlyPoint {
	series := make([]MonthlyPoint, 12)
	for m := 1; m <= 12; m++ {
		series[m-1] = MonthlyPoint{
			Month:   m,
			Label:   monthLabels[m-1],
			Revenue: byMonth[m],
		}
	}
	return series
}

func (s *ReportService) paidRevenueForMonth(year int, month time.Month) (float64, error) {
	var total float64
	err := s.DB.Model(&models.Payment{}).
		Where("status = ? AND YEAR(added_at) = ? AND MONTH(added_at) = ?",
			models.PaymentPaid, year, int(month)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (s *ReportService) countForMonth(model interface{}, extra string, year int, month time.Month) (int64, error) {
	var count int64
	query := s.DB.Model(model).
		Where("YEAR(added_at) = ? AND MONTH(added_at) = ?", year, int(month))
	if extra != "" {
		query = query.Where(extra)
	}
	err := query.Count(&count).Error
	return count, err
}

// RevenueGrowth compares this calendar month's paid revenue against last
// month's.
func (s *ReportService) RevenueGrowth(now time.Time) (float64, error) {
	current, err := s.paidRevenueForMonth(now.Year(), now.Month())
	if err != nil {
		return 0, err
	}
	prev := now.AddDate(0, -1, 0)
	previous, err := s.paidRevenueForMonth(prev.Year(), prev.Month())
	if err != nil {
		return 0, err
	}
	return Growth(current, previous), nil
}

// BookingGrowth compares booking counts month over month.
func (s *ReportService) BookingGrowth(now time.Time) (float64, error) {
	current, err := s.countForMonth(&models.Booking{}, "", now.Year(), now.Month())
	if err != nil {
		return 0, err
	}
	prev := now.AddDate(0, -1, 0)
	previous, err := s.countForMonth(&models.Booking{}, "", prev.Year(), prev.Month())
	if err != nil {
		return 0, err
	}
	return Growth(float64(current), float64(previous)), nil
}

// UserGrowth compares visitor registrations month over month.
func (s *ReportService) UserGrowth(now time.Time) (float64, error) {
	current, err := s.countForMonth(&models.User{}, "role = 'visitor'", now.Year(), now.Month())
	if err != nil {
		return 0, err
	}
	prev := now.AddDate(0, -1, 0)
	previous, err := s.countForMonth(&models.User{}, "role = 'visitor'", prev.Year(), prev.Month())
	if err != nil {
		return 0, err
	}
	return Growth(float64(current), float64(previous)), nil
}

// MonthlyRevenue builds the dense Jan-Dec paid revenue series for one
// calendar year.
func (s *ReportService) MonthlyRevenue(year int) ([]MonthlyPoint, error) {
	var rows []struct {
		Month   int
		Revenue float64
	}
	err := s.DB.Model(&models.Payment{}).
		Select("MONTH(added_at) AS month, COALESCE(SUM(amount), 0) AS revenue").
		Where("status = ? AND YEAR(added_at) = ?", models.PaymentPaid, year).
		Group("MONTH(added_at)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byMonth := make(map[int]float64, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r.Revenue
	}
	return FillMonthlySeries(byMonth), nil
}

// CategoryDistribution counts experiences per category.
func (s *ReportService) CategoryDistribution() ([]CategoryCount, error) {
	var rows []CategoryCount
	err := s.DB.Model(&models.Experience{}).
		Select("type AS category, COUNT(*) AS count").
		Group("type").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// BookingStatusDistribution counts bookings per status.
func (s *ReportService) BookingStatusDistribution() ([]StatusCount, error) {
	var rows []StatusCount
	err := s.DB.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

// TopExperiences ranks experiences by paid revenue, bookings as tiebreaker.
// Paid payments are deduplicated per booking so each booking's amount counts
// exactly once no matter how many payment rows it carries.
func (s *ReportService) TopExperiences(limit int) ([]TopExperience, error) {
	var rows []TopExperience
	err := s.DB.Raw(`
		SELECT e.id, e.title, e.type,
		       COUNT(DISTINCT b.id) AS total_bookings,
		       COALESCE(SUM(CASE WHEN p.booking_id IS NOT NULL THEN b.total_amount ELSE 0 END), 0) AS total_revenue
		FROM experiences e
		LEFT JOIN bookings b ON b.experience_id = e.id
		LEFT JOIN (
		    SELECT DISTINCT booking_id FROM payments WHERE status = ?
		) p ON p.booking_id = b.id
		GROUP BY e.id, e.title, e.type
		ORDER BY total_revenue DESC, total_bookings DESC
		LIMIT ?`, models.PaymentPaid, limit).
		Scan(&rows).Error
	return rows, err
}

// RecentBookings returns the latest bookings with visitor and experience.
func (s *ReportService) RecentBookings(limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.
		Preload("Experience").
		Preload("Visitor").Preload("Visitor.User").
		Order("added_at DESC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

// RecentPayments returns the latest paid payments.
func (s *ReportService) RecentPayments(limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.
		Preload("Booking").
		Preload("Booking.Visitor").Preload("Booking.Visitor.User").
		Where("status = ?", models.PaymentPaid).
		Order("added_at DESC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

// Dashboard assembles the full dashboard payload.
func (s *ReportService) Dashboard(now time.Time) (*DashboardData, error) {
	data := &DashboardData{}

	err := s.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.TotalRevenue).Error
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Booking{}).Count(&data.TotalBookings).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Booking{}).Where("status = ?", models.BookingConfirmed).
		Count(&data.ConfirmedBookings).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.User{}).Where("role = 'visitor'").
		Count(&data.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Experience{}).Count(&data.TotalExperiences).Error; err != nil {
		return nil, err
	}

	if data.RevenueGrowth, err = s.RevenueGrowth(now); err != nil {
		return nil, err
	}
	if data.BookingGrowth, err = s.BookingGrowth(now); err != nil {
		return nil, err
	}
	if data.UserGrowth, err = s.UserGrowth(now); err != nil {
		return nil, err
	}

	if data.MonthlyRevenue, err = s.MonthlyRevenue(now.Year()); err != nil {
		return nil, err
	}
	if data.Categories, err = s.CategoryDistribution(); err != nil {
		return nil, err
	}
	if data.BookingStatuses, err = s.BookingStatusDistribution(); err != nil {
		return nil, err
	}
	if data.TopExperiences, err = s.TopExperiences(5); err != nil {
		return nil, err
	}
	if data.RecentBookings, err = s.RecentBookings(10); err != nil {
		return nil, err
	}
	if data.RecentPayments, err = s.RecentPayments(5); err != nil {
		return nil, err
	}
	return data, nil
}

// RevenueReport sums paid payments per day over the range.
func (s *ReportService) RevenueReport(start, end time.Time) ([]DailyPoint, error) {
	var rows []DailyPoint
	err := s.DB.Model(&models.Payment{}).
		Select("DATE(added_at) AS date, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Where("status = ? AND added_at >= ? AND added_at < ?",
			models.PaymentPaid, start, end.AddDate(0, 0, 1)).
		Group("DATE(added_at)").
		Order("date").
		Scan(&rows).Error
	return rows, err
}

// BookingsReport counts bookings, tickets and booked value per day.
func (s *ReportService) BookingsReport(start, end time.Time) ([]DailyPoint, error) {
	var rows []DailyPoint
	err := s.DB.Model(&models.Booking{}).
		Select("DATE(added_at) AS date, COUNT(*) AS count, " +
			"COALESCE(SUM(total_amount), 0) AS amount, " +
			"COALESCE(SUM(number_of_tickets), 0) AS tickets").
		Where("added_at >= ? AND added_at < ?", start, end.AddDate(0, 0, 1)).
		Group("DATE(added_at)").
		Order("date").
		Scan(&rows).Error
	return rows, err
}

// UsersReport counts visitor registrations per day.
func (s *ReportService) UsersReport(start, end time.Time) ([]DailyPoint, error) {
	var rows []DailyPoint
	err := s.DB.Model(&models.User{}).
		Select("DATE(added_at) AS date, COUNT(*) AS count").
		Where("role = 'visitor' AND added_at >= ? AND added_at < ?", start, end.AddDate(0, 0, 1)).
		Group("DATE(added_at)").
		Order("date").
		Scan(&rows).Error
	return rows, err
}

// ExperiencesReport summarizes bookings, revenue and review scores for
// experiences created in the range. Reviews are pre-aggregated in a subquery
// so joining them cannot fan out the booking rows and inflate revenue, and
// paid payments are deduplicated per booking.
func (s *ReportService) ExperiencesReport(start, end time.Time) ([]ExperienceReportRow, error) {
	var rows []ExperienceReportRow
	err := s.DB.Raw(`
		SELECT e.id, e.title, e.type,
		       COUNT(DISTINCT b.id) AS total_bookings,
		       COALESCE(SUM(CASE WHEN p.booking_id IS NOT NULL THEN b.total_amount ELSE 0 END), 0) AS total_revenue,
		       COALESCE(MAX(r.review_count), 0) AS review_count,
		       COALESCE(MAX(r.average_rating), 0) AS average_rating
		FROM experiences e
		LEFT JOIN bookings b ON b.experience_id = e.id
		LEFT JOIN (
		    SELECT DISTINCT booking_id FROM payments WHERE status = ?
		) p ON p.booking_id = b.id
		LEFT JOIN (
		    SELECT experience_id,
		           COUNT(*) AS review_count,
		           AVG(rating) AS average_rating
		    FROM reviews
		    GROUP BY experience_id
		) r ON r.experience_id = e.id
		WHERE e.added_at >= ? AND e.added_at < ?
		GROUP BY e.id, e.title, e.type
		ORDER BY total_revenue DESC`,
		models.PaymentPaid, start, end.AddDate(0, 0, 1)).
		Scan(&rows).Error
	return rows, err
}
