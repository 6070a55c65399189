package queries

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultTopItems   = 5
	DefaultRevenueDay = 7
	maxRevenueDays    = 366
)

var (
	ErrDashboardQueryIsNotConstructed = errors.New(
		"DashboardQuery must be created via NewDashboardQuery constructor",
	)
	ErrRevenuePerDayQueryIsNotConstructed = errors.New(
		"RevenuePerDayQuery must be created via NewRevenuePerDayQuery constructor",
	)
	ErrVendorPerformanceQueryIsNotConstructed = errors.New(
		"VendorPerformanceQuery must be created via NewVendorPerformanceQuery constructor",
	)
)

// TopItemView is an item ranked by units sold.
type TopItemView struct {
	ItemID   uuid.UUID       `json:"itemId"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DashboardView aggregates the admin dashboard figures.
type DashboardView struct {
	Revenue        decimal.Decimal    `json:"revenue"`
	OrderCount     int64              `json:"orderCount"`
	CompletedCount int64              `json:"completedCount"`
	CustomerCount  int64              `json:"customerCount"`
	VendorCount    int64              `json:"vendorCount"`
	TopItems       []TopItemView      `json:"topItems"`
	RecentOrders   []OrderSummaryView `json:"recentOrders"`
}

// DailyRevenueView is the revenue of one calendar day.
type DailyRevenueView struct {
	Day     string          `json:"day"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type VendorPerformanceView struct {
	VendorID  uuid.UUID       `json:"vendorId"`
	Name      string          `json:"name"`
	Orders    int64           `json:"orders"`
	ItemsSold int64           `json:"itemsSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DashboardQuery summarizes the marketplace. Revenue and top items only count COMPLETED orders.
type DashboardQuery struct {
	topItems     int
	recentOrders int

	guard guard.ConstructorGuard
}

// NewDashboardQuery creates a dashboard query listing topItems items and
// recentOrders orders. Zero topItems selects DefaultTopItems.
// Returns an error when a limit is outside its range.
func NewDashboardQuery(topItems, recentOrders int) (DashboardQuery, error) {
	if topItems == 0 {
		topItems = DefaultTopItems
	}
	if topItems < 1 || topItems > MaxListLimit {
		return DashboardQuery{}, errs.NewValueIsOutOfRangeError("topItems", topItems, 1, MaxListLimit)
	}
	if recentOrders < 0 || recentOrders > MaxListLimit {
		return DashboardQuery{}, errs.NewValueIsOutOfRangeError("recentOrders", recentOrders, 0, MaxListLimit)
	}
	return DashboardQuery{topItems: topItems, recentOrders: recentOrders, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrDashboardQueryIsNotConstructed if validation fails.
func (q DashboardQuery) Validate() error {
	return q.guard.Validate(ErrDashboardQueryIsNotConstructed)
}

// RevenuePerDayQuery reports completed-order revenue for each of the last days days, ending on until.
type RevenuePerDayQuery struct {
	days  int
	until time.Time

	guard guard.ConstructorGuard
}

// NewRevenuePerDayQuery creates a query over the days calendar days ending at until.
// Zero days selects DefaultRevenueDay. Returns an error when days is out of
// range or until is zero.
func NewRevenuePerDayQuery(days int, until time.Time) (RevenuePerDayQuery, error) {
	if days == 0 {
		days = DefaultRevenueDay
	}
	if days < 1 || days > maxRevenueDays {
		return RevenuePerDayQuery{}, errs.NewValueIsOutOfRangeError("days", days, 1, maxRevenueDays)
	}
	if until.IsZero() {
		return RevenuePerDayQuery{}, errs.NewValueIsRequiredError("until")
	}
	return RevenuePerDayQuery{days: days, until: until.UTC(), guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrRevenuePerDayQueryIsNotConstructed if validation fails.
func (q RevenuePerDayQuery) Validate() error {
	return q.guard.Validate(ErrRevenuePerDayQueryIsNotConstructed)
}

// VendorPerformanceQuery ranks vendors by revenue.
type VendorPerformanceQuery struct {
	guard guard.ConstructorGuard
}

// NewVendorPerformanceQuery creates the query.
func NewVendorPerformanceQuery() VendorPerformanceQuery {
	return VendorPerformanceQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrVendorPerformanceQueryIsNotConstructed if validation fails.
func (q VendorPerformanceQuery) Validate() error {
	return q.guard.Validate(ErrVendorPerformanceQueryIsNotConstructed)
}

// AnalyticsQueryHandler serves the admin dashboards.
type AnalyticsQueryHandler struct {
	db *gorm.DB
}

// NewAnalyticsQueryHandler creates a handler over db.
func NewAnalyticsQueryHandler(db *gorm.DB) AnalyticsQueryHandler {
	return AnalyticsQueryHandler{db: db}
}

// Dashboard reads the totals, the top items and the most recent orders.
func (h AnalyticsQueryHandler) Dashboard(ctx context.Context, query DashboardQuery) (*DashboardView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	completed := int(order.Completed)

	var totals struct {
		Revenue        decimal.Decimal
		OrderCount     int64
		CompletedCount int64
		CustomerCount  int64
		VendorCount    int64
	}
	if err := db.Raw(`
		SELECT
			COALESCE((SELECT SUM(total) FROM orders WHERE status = ?), 0) AS revenue,
			(SELECT COUNT(*) FROM orders) AS order_count,
			(SELECT COUNT(*) FROM orders WHERE status = ?) AS completed_count,
			(SELECT COUNT(*) FROM customers) AS customer_count,
			(SELECT COUNT(*) FROM vendors) AS vendor_count
	`, completed, completed).Scan(&totals).Error; err != nil {
		return nil, err
	}

	view := &DashboardView{
		Revenue:        totals.Revenue,
		OrderCount:     totals.OrderCount,
		CompletedCount: totals.CompletedCount,
		CustomerCount:  totals.CustomerCount,
		VendorCount:    totals.VendorCount,
		TopItems:       make([]TopItemView, 0),
		RecentOrders:   make([]OrderSummaryView, 0),
	}

	if err := db.Raw(`
		SELECT i.item_id, MAX(i.name) AS name, SUM(i.quantity) AS quantity, SUM(i.price * i.quantity) AS revenue
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.status = ?
		GROUP BY i.item_id
		ORDER BY quantity DESC, name
		LIMIT ?
	`, completed, query.topItems).Scan(&view.TopItems).Error; err != nil {
		return nil, err
	}

	if query.recentOrders > 0 {
		var rows []orderRow
		if err := db.Raw(`SELECT `+orderColumns+` FROM orders o ORDER BY o.order_date DESC, o.id LIMIT ?`,
			query.recentOrders).Scan(&rows).Error; err != nil {
			return nil, err
		}
		view.RecentOrders = summaries(rows)
	}

	return view, nil
}

// RevenuePerDay returns one entry per day, oldest first, with zero entries for days without sales.
// Days are bucketed by the order date in UTC.
func (h AnalyticsQueryHandler) RevenuePerDay(ctx context.Context, query RevenuePerDayQuery) ([]DailyRevenueView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	lastDay := query.until.Truncate(24 * time.Hour)
	firstDay := lastDay.AddDate(0, 0, -(query.days - 1))

	var rows []struct {
		Day     time.Time
		Orders  int64
		Revenue decimal.Decimal
	}
	if err := h.db.WithContext(ctx).Raw(`
		SELECT date_trunc('day', order_date AT TIME ZONE 'UTC') AS day,
			COUNT(*) AS orders,
			SUM(total) AS revenue
		FROM orders
		WHERE status = ? AND order_date >= ? AND order_date < ?
		GROUP BY 1
	`, int(order.Completed), firstDay, lastDay.AddDate(0, 0, 1)).Scan(&rows).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]DailyRevenueView, len(rows))
	for _, r := range rows {
		key := r.Day.Format(time.DateOnly)
		byDay[key] = DailyRevenueView{Day: key, Orders: r.Orders, Revenue: r.Revenue}
	}

	views := make([]DailyRevenueView, 0, query.days)
	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		key := day.Format(time.DateOnly)
		if v, ok := byDay[key]; ok {
			views = append(views, v)
			continue
		}
		views = append(views, DailyRevenueView{Day: key, Revenue: decimal.Zero})
	}
	return views, nil
}

// VendorPerformance ranks vendors by revenue from the item snapshots of COMPLETED orders.
func (h AnalyticsQueryHandler) VendorPerformance(
	ctx context.Context,
	query VendorPerformanceQuery,
) ([]VendorPerformanceView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views := make([]VendorPerformanceView, 0)
	if err := h.db.WithContext(ctx).Raw(`
		SELECT i.vendor_id, MAX(i.vendor_name) AS name,
			COUNT(DISTINCT i.order_id) AS orders,
			SUM(i.quantity) AS items_sold,
			SUM(i.price * i.quantity) AS revenue
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.status = ?
		GROUP BY i.vendor_id
		ORDER BY revenue DESC, name
	`, int(order.Completed)).Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}
