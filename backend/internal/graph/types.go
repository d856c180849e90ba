package graph

// UserNode is the relationship-graph counterpart of a profile document,
// identity-aligned with it and carrying only the fields the matching queries
// read.
type UserNode struct {
	ID          string `json:"id"`
	Age         int    `json:"age"`
	Sex         string `json:"sex"`
	Orientation string `json:"orientation"`
}

// CityLoveStats is one row of the per-city love points report
type CityLoveStats struct {
	City         string  `json:"city"`
	Users        int64   `json:"users"`
	Interactions int64   `json:"interactions"`
	LoveRatio    float64 `json:"love_ratio"`
}
