package request

// NearbyJobsRequest carries the query parameters of the nearby listing.
// Lat/Lng are optional: when absent the finder falls back to the caller's
// stored location, then to the distance-less degraded mode.
type NearbyJobsRequest struct {
	Lat      *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng      *float64 `json:"lng" validate:"omitempty,longitude"`
	RadiusKm *float64 `json:"radius_km" validate:"omitempty,gt=0"`
	Query    string   `json:"q" validate:"omitempty,max=100"`
	Limit    int      `json:"limit" validate:"omitempty,min=1,max=100"`
}

// JobActionRequest is the body of decline/cancel calls.
type JobActionRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// ClientMeta is filled by the handler from the HTTP request and ends up in
// the audit record, never in the state transition itself.
type ClientMeta struct {
	IP        string
	UserAgent string
}
