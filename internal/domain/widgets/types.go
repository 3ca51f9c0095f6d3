package widgets

// The closed set of dashboard widget keys. "mechandiesSales" is the literal
// wire key consumers already depend on; renaming it would be a breaking
// change.
const (
	KeyTotalStudents        = "totalStudents"
	KeyTrialsBooked         = "trialsBooked"
	KeyCancellations        = "cancellations"
	KeyRevenue              = "revenue"
	KeyClassCapacity        = "classCapacity"
	KeyGrowth               = "growth"
	KeyCustomerSatisfaction = "customerSatisfaction"
	KeyMerchandiseSales     = "mechandiesSales"
)

var allKeys = map[string]struct{}{
	KeyTotalStudents:        {},
	KeyTrialsBooked:         {},
	KeyCancellations:        {},
	KeyRevenue:              {},
	KeyClassCapacity:        {},
	KeyGrowth:               {},
	KeyCustomerSatisfaction: {},
	KeyMerchandiseSales:     {},
}

func ValidKey(key string) bool {
	_, ok := allKeys[key]
	return ok
}

// Widget is one admin's placement of a dashboard panel. Unique per
// (admin_id, widget_key); created lazily the first time the admin configures
// their dashboard.
type Widget struct {
	ID      int64  `json:"id"`
	AdminID int64  `json:"admin_id"`
	Key     string `json:"key"`
	Order   int    `json:"order"`
	Visible bool   `json:"visible"`
}

// Placement is the caller-supplied order/visibility for one key.
type Placement struct {
	Key     string `json:"key" validate:"required"`
	Order   int    `json:"order" validate:"gte=0"`
	Visible bool   `json:"visible"`
}
