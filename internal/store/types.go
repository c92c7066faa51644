package store

// StatusCount is one row of a status breakdown aggregate.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// MonthCount is one row of a per-month maintenance-log aggregate. Month is
// formatted as YYYY-MM.
type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// DashboardCounts holds the per-user entity totals for the dashboard.
type DashboardCounts struct {
	MaintenanceLogs int64 `json:"maintenance_logs"`
	WorkOrders      int64 `json:"work_orders"`
	Tasks           int64 `json:"tasks"`
}
