package httpapi

// MarketStateJSON is one market's reference data plus its classified and
// formatted session state, as served to the renderer.
type MarketStateJSON struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Timezone    string  `json:"timezone"`
	Region      string  `json:"region"`
	OpenTime    string  `json:"openTime"`
	CloseTime   string  `json:"closeTime"`
	LunchStart  string  `json:"lunchStart,omitempty"`
	LunchEnd    string  `json:"lunchEnd,omitempty"`
	LocalTime   string  `json:"localTime"`
	ZoneAbbrev  string  `json:"zoneAbbrev"`
	GMTOffset   float64 `json:"gmtOffset"`
	OffsetLabel string  `json:"offsetLabel"`

	State       string `json:"state"`
	StatusLabel string `json:"statusLabel"`
	Open        bool   `json:"open"`
	Weekend     bool   `json:"weekend"`
	Lunch       bool   `json:"lunch"`
	Holiday     bool   `json:"holiday"`
	HolidayName string `json:"holidayName,omitempty"`

	NextEvent     string `json:"nextEvent"`
	NextEventTime int64  `json:"nextEventTime"` // Unix ms
	ViewerTime    string `json:"viewerTime"`
	TimeUntilMs   int64  `json:"timeUntilMs"`
	Countdown     string `json:"countdown"`
}

// MarketsResponse is the GET /api/markets payload.
type MarketsResponse struct {
	Now      int64             `json:"now"` // Unix ms of the (possibly simulated) instant
	Markets  []MarketStateJSON `json:"markets"`
	Selected []string          `json:"selected"`
}

// ClockStateJSON is the GET /api/clock payload.
type ClockStateJSON struct {
	Now              int64  `json:"now"`      // Unix ms
	OffsetMs         int64  `json:"offsetMs"` // signed simulation offset
	Paused           bool   `json:"paused"`
	TimezoneOverride string `json:"timezoneOverride,omitempty"`
	SimulationActive bool   `json:"simulationActive"`
}

// SetInstantRequest scrubs the simulated clock to an absolute instant.
type SetInstantRequest struct {
	Instant int64 `json:"instant"` // Unix ms
}

// SetTimezoneRequest sets or clears the display-timezone override.
type SetTimezoneRequest struct {
	Timezone *string `json:"timezone"`
}

// HoursRequest sets a per-market open/close override. Nil fields mean
// "use the market default".
type HoursRequest struct {
	OpenTime  *string `json:"openTime"`
	CloseTime *string `json:"closeTime"`
}

// SelectionRequest replaces the viewer's selected market set.
type SelectionRequest struct {
	MarketIDs []string `json:"marketIds"`
}
