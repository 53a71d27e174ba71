package render

import "slices"

// Region names one independently re-renderable part of the page.
type Region string

const (
	RegionHeader        Region = "header"
	RegionStats         Region = "stats"
	RegionSubscriptions Region = "subscriptions"
	RegionDetail        Region = "detail"
	RegionAnalytics     Region = "analytics"
	RegionTips          Region = "tips"
	RegionAddForm       Region = "add_form"
	RegionNotifications Region = "notifications"
	RegionBridge        Region = "bridge"
)

// Regions lists every region in page order. Each has a template of the same name.
var Regions = []Region{
	RegionHeader,
	RegionStats,
	RegionSubscriptions,
	RegionDetail,
	RegionAnalytics,
	RegionTips,
	RegionAddForm,
	RegionNotifications,
	RegionBridge,
}

func (r Region) Valid() bool {
	return slices.Contains(Regions, r)
}

// ElementID is the id of the element wrapping the region on the page.
func (r Region) ElementID() string {
	return "region-" + string(r)
}
