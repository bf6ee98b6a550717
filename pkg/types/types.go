package types

// OriginType is the kind of backend an origin-pull mapping points at.
type OriginType string

const (
	OriginTypeHostServer    OriginType = "HOST_SERVER"
	OriginTypeObjectStorage OriginType = "OBJECT_STORAGE"
)

// MetricFrequency is the bucketing for usage metrics queries. Values
// outside this set are forwarded to the service as-is; the server is the
// authority on which frequencies exist.
type MetricFrequency string

const (
	FrequencyDay       MetricFrequency = "day"
	FrequencyWeek      MetricFrequency = "week"
	FrequencyMonth     MetricFrequency = "month"
	FrequencyAggregate MetricFrequency = "aggregate"
)

// DomainMapping is one CDN configuration mapping in the account.
type DomainMapping struct {
	UniqueID     string `json:"uniqueId"`
	Domain       string `json:"domain"`
	Origin       string `json:"originHost"`
	OriginType   string `json:"originType"`
	Protocol     string `json:"protocol"`
	CName        string `json:"cname"`
	Status       string `json:"status"`
	VendorName   string `json:"vendorName"`
	CreateDate   string `json:"createDate"`
	HTTPPort     int    `json:"httpPort,omitempty"`
	Path         string `json:"path,omitempty"`
	CacheKeyRule string `json:"cacheKeyQueryRule,omitempty"`
}

// OriginPath is an origin-pull mapping keyed by (uniqueId, path).
type OriginPath struct {
	UniqueID                 string `json:"uniqueId"`
	Path                     string `json:"path"`
	Origin                   string `json:"origin"`
	OriginType               string `json:"originType"`
	HTTPPort                 int    `json:"httpPort"`
	Protocol                 string `json:"protocol"`
	Header                   string `json:"header,omitempty"`
	PerformanceConfiguration string `json:"performanceConfiguration"`
	CacheKeyQueryRule        string `json:"cacheKeyQueryRule"`
	BucketName               string `json:"bucketName,omitempty"`
	FileExtension            string `json:"fileExtension,omitempty"`
	Status                   string `json:"status,omitempty"`
}

// PurgeRecord is one entry produced by a cache purge request.
type PurgeRecord struct {
	Date   string `json:"date"`
	Path   string `json:"path"`
	Saved  string `json:"saved"`
	Status string `json:"status"`
}

// UsageMetrics is the aggregated or time-bucketed statistics for one
// mapping over a date window. The shape mirrors what the metrics service
// returns; this layer does not interpret it.
type UsageMetrics struct {
	Type        string    `json:"type"`
	Names       []string  `json:"names"`
	Totals      []float64 `json:"totals"`
	Averages    []float64 `json:"averages"`
	Percentiles []float64 `json:"percentiles"`
}
