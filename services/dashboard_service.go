package services

import (
	"context"
	"time"

	"hotel-ops/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RoomOccupancy struct {
	OccupiedRooms int64 `json:"occupiedRooms"`
	TotalRooms    int64 `json:"totalRooms"`
	OccupancyRate int64 `json:"occupancyRate"`
}

type DailyRevenue struct {
	DailyRevenue        decimal.Decimal `json:"dailyRevenue"`
	ComparedToYesterday int64           `json:"comparedToYesterday"`
}

type GuestStatistics struct {
	TotalGuests    int64 `json:"totalGuests"`
	NewGuestsToday int64 `json:"newGuestsToday"`
}

type RoomTypeShare struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type DashboardSummary struct {
	Occupancy          RoomOccupancy        `json:"occupancy"`
	Revenue            DailyRevenue         `json:"revenue"`
	Guests             GuestStatistics      `json:"guests"`
	UpcomingCheckIns   int64                `json:"upcomingCheckIns"`
	RecentTransactions []models.Transaction `json:"recentTransactions"`
	RoomTypes          []RoomTypeShare      `json:"roomTypes"`
}

// DashboardService computes the front-desk overview figures. Days are UTC days.
type DashboardService struct {
	DB     *gorm.DB
	Logger *zap.Logger
	Now    func() time.Time
}

func NewDashboardService(db *gorm.DB, logger *zap.Logger) *DashboardService {
	return &DashboardService{DB: db, Logger: logger, Now: func() time.Time { return time.Now().UTC() }}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	var out DashboardSummary
	var err error

	if out.Occupancy, err = s.RoomOccupancy(ctx); err != nil {
		return nil, err
	}
	if out.Revenue, err = s.DailyRevenue(ctx); err != nil {
		return nil, err
	}
	if out.Guests, err = s.GuestStatistics(ctx); err != nil {
		return nil, err
	}
	if out.UpcomingCheckIns, err = s.UpcomingCheckIns(ctx); err != nil {
		return nil, err
	}
	if out.RecentTransactions, err = s.RecentTransactions(ctx); err != nil {
		return nil, err
	}
	if out.RoomTypes, err = s.RoomTypeDistribution(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

// RoomOccupancy counts rooms that currently hold a checked-in guest.
func (s *DashboardService) RoomOccupancy(ctx context.Context) (RoomOccupancy, error) {
	var occ RoomOccupancy
	db := s.DB.WithContext(ctx)

	if err := db.Model(&models.Room{}).Count(&occ.TotalRooms).Error; err != nil {
		return occ, surface(s.Logger, "Failed to load occupancy", err)
	}
	if err := db.Model(&models.Transaction{}).
		Where("status = ?", models.TransactionCheckedIn).
		Distinct("room_id").
		Count(&occ.OccupiedRooms).Error; err != nil {
		return occ, surface(s.Logger, "Failed to load occupancy", err)
	}
	if occ.TotalRooms > 0 {
		occ.OccupancyRate = percentOf(decimal.NewFromInt(occ.OccupiedRooms), decimal.NewFromInt(occ.TotalRooms))
	}
	return occ, nil
}

// DailyRevenue sums bills paid today and compares them with yesterday.
// With no revenue yesterday the comparison is reported as 100.
func (s *DashboardService) DailyRevenue(ctx context.Context) (DailyRevenue, error) {
	today := startOfDay(s.Now())
	yesterday := today.AddDate(0, 0, -1)

	todaySum, err := s.paidBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return DailyRevenue{}, err
	}
	yesterdaySum, err := s.paidBetween(ctx, yesterday, today)
	if err != nil {
		return DailyRevenue{}, err
	}

	rev := DailyRevenue{DailyRevenue: todaySum, ComparedToYesterday: 100}
	if !yesterdaySum.IsZero() {
		rev.ComparedToYesterday = percentOf(todaySum.Sub(yesterdaySum), yesterdaySum)
	}
	return rev, nil
}

func (s *DashboardService) paidBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := s.DB.WithContext(ctx).Model(&models.Bill{}).
		Where("payment_status = ? AND payment_date >= ? AND payment_date < ?", models.PaymentPaid, from, to).
		Pluck("total_amount", &amounts).Error; err != nil {
		return decimal.Zero, surface(s.Logger, "Failed to load revenue", err)
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}

func percentOf(part, whole decimal.Decimal) int64 {
	return part.Mul(decimal.NewFromInt(100)).Div(whole).Round(0).IntPart()
}

func (s *DashboardService) GuestStatistics(ctx context.Context) (GuestStatistics, error) {
	var st GuestStatistics
	db := s.DB.WithContext(ctx)
	if err := db.Model(&models.Guest{}).Count(&st.TotalGuests).Error; err != nil {
		return st, surface(s.Logger, "Failed to load guest statistics", err)
	}
	if err := db.Model(&models.Guest{}).
		Where("created_at >= ?", startOfDay(s.Now())).
		Count(&st.NewGuestsToday).Error; err != nil {
		return st, surface(s.Logger, "Failed to load guest statistics", err)
	}
	return st, nil
}

// UpcomingCheckIns counts PENDING bookings due to arrive today.
func (s *DashboardService) UpcomingCheckIns(ctx context.Context) (int64, error) {
	today := startOfDay(s.Now())
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.Transaction{}).
		Where("status = ? AND check_in >= ? AND check_in < ?", models.TransactionPending, today, today.AddDate(0, 0, 1)).
		Count(&n).Error; err != nil {
		return 0, surface(s.Logger, "Failed to load upcoming check-ins", err)
	}
	return n, nil
}

func (s *DashboardService) RecentTransactions(ctx context.Context) ([]models.Transaction, error) {
	var list []models.Transaction
	if err := s.DB.WithContext(ctx).
		Preload("Guest").
		Preload("Room").
		Order("created_at DESC").
		Limit(5).
		Find(&list).Error; err != nil {
		return nil, surface(s.Logger, "Failed to load recent transactions", err)
	}
	return list, nil
}

func (s *DashboardService) RoomTypeDistribution(ctx context.Context) ([]RoomTypeShare, error) {
	var types []models.RoomType
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, surface(s.Logger, "Failed to load room types", err)
	}

	type countRow struct {
		RoomTypeID uint
		Total      int64
	}
	var rows []countRow
	if err := s.DB.WithContext(ctx).Model(&models.Room{}).
		Select("room_type_id, COUNT(*) AS total").
		Group("room_type_id").
		Scan(&rows).Error; err != nil {
		return nil, surface(s.Logger, "Failed to load room types", err)
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.RoomTypeID] = r.Total
	}

	out := make([]RoomTypeShare, 0, len(types))
	for _, t := range types {
		out = append(out, RoomTypeShare{Name: t.Name, Value: counts[t.ID]})
	}
	return out, nil
}
