// Package cdn manages CDN marketplace mappings: domain mappings, origin
// pull paths, cache purges and usage metrics. It is a thin translation
// layer over the remote API; nothing is cached or persisted locally.
package cdn

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yourorg/cdnctl/internal/api"
	"github.com/yourorg/cdnctl/pkg/types"
)

const (
	configurationService = "SoftLayer_Network_CdnMarketplace_Configuration_Mapping"
	pathService          = "SoftLayer_Network_CdnMarketplace_Configuration_Mapping_Path"
	metricsService       = "SoftLayer_Network_CdnMarketplace_Metrics"
	purgeService         = "SoftLayer_Network_CdnMarketplace_Configuration_Cache_Purge"
)

// usageDateLayout is the wire-level format for metrics date arguments.
const usageDateLayout = "2006-01-02 15:04:05"

var (
	// ErrBucketNameRequired is returned by AddOrigin before any remote
	// call when the origin type is OBJECT_STORAGE and no bucket is given.
	ErrBucketNameRequired = errors.New("Bucket name is required when the origin type is OBJECT_STORAGE")

	// ErrDateRangeIncomplete is returned by UsageMetrics when only one
	// end of the date window is supplied.
	ErrDateRangeIncomplete = errors.New("start_date or end_date is None, both need to be strings or None.")

	// ErrMappingNotFound is returned by Get when the lookup collection
	// comes back empty.
	ErrMappingNotFound = errors.New("cdn mapping not found")
)

// Manager exposes the CDN management verbs. It holds only the transport
// handle; instances carry no other state and every operation is a single
// synchronous round trip.
type Manager struct {
	transport api.Transport
	now       func() time.Time
}

func NewManager(t api.Transport) *Manager {
	return &Manager{transport: t, now: time.Now}
}

// List returns the CDN domain mappings for the account. opts (mask,
// limit, offset) pass through to the service unmodified.
func (m *Manager) List(opts *api.CallOptions) ([]types.DomainMapping, error) {
	raw, err := m.transport.Call(configurationService, "listDomainMappings", nil, opts)
	if err != nil {
		return nil, err
	}
	var mappings []types.DomainMapping
	if err := json.Unmarshal(raw, &mappings); err != nil {
		return nil, err
	}
	return mappings, nil
}

// Get looks up one mapping by unique id. The remote call returns an array
// that by contract holds exactly one element; an empty array is reported
// as ErrMappingNotFound rather than an index panic.
func (m *Manager) Get(uniqueID string, opts *api.CallOptions) (types.DomainMapping, error) {
	raw, err := m.transport.Call(configurationService, "listDomainMappingByUniqueId", []any{uniqueID}, opts)
	if err != nil {
		return types.DomainMapping{}, err
	}
	var mappings []types.DomainMapping
	if err := json.Unmarshal(raw, &mappings); err != nil {
		return types.DomainMapping{}, err
	}
	if len(mappings) == 0 {
		return types.DomainMapping{}, fmt.Errorf("%w: unique id %s", ErrMappingNotFound, uniqueID)
	}
	return mappings[0], nil
}

// Origins returns the origin-pull mappings configured under a CDN.
func (m *Manager) Origins(uniqueID string, opts *api.CallOptions) ([]types.OriginPath, error) {
	raw, err := m.transport.Call(pathService, "listOriginPath", []any{uniqueID}, opts)
	if err != nil {
		return nil, err
	}
	var origins []types.OriginPath
	if err := json.Unmarshal(raw, &origins); err != nil {
		return nil, err
	}
	return origins, nil
}

// OriginOpts describes a new origin-pull mapping. Zero values fall back
// to the service defaults documented on each field.
type OriginOpts struct {
	Path   string
	Origin string

	// OriginType defaults to HOST_SERVER.
	OriginType types.OriginType

	// Header, when non-empty, is submitted as the host header override.
	// An empty header is omitted from the record entirely.
	Header string

	// Port defaults to 80.
	Port int

	// Protocol defaults to HTTP.
	Protocol string

	// BucketName is required when OriginType is OBJECT_STORAGE and is
	// never submitted otherwise.
	BucketName string

	// FileExtensions is submitted only for OBJECT_STORAGE origins, and
	// only when non-empty.
	FileExtensions string

	// OptimizeFor defaults to "General web delivery".
	OptimizeFor string

	// CacheQuery defaults to "include all".
	CacheQuery string
}

// AddOrigin creates an origin-pull mapping under the given CDN and returns
// the created record. The OBJECT_STORAGE bucket check happens locally,
// before the remote call.
func (m *Manager) AddOrigin(uniqueID string, opts OriginOpts) (types.OriginPath, error) {
	originType := opts.OriginType
	if originType == "" {
		originType = types.OriginTypeHostServer
	}
	port := opts.Port
	if port == 0 {
		port = 80
	}
	protocol := opts.Protocol
	if protocol == "" {
		protocol = "HTTP"
	}
	optimizeFor := opts.OptimizeFor
	if optimizeFor == "" {
		optimizeFor = "General web delivery"
	}
	cacheQuery := opts.CacheQuery
	if cacheQuery == "" {
		cacheQuery = "include all"
	}

	newOrigin := map[string]any{
		"uniqueId":                 uniqueID,
		"path":                     opts.Path,
		"origin":                   opts.Origin,
		"originType":               string(originType),
		"httpPort":                 port,
		"protocol":                 protocol,
		"performanceConfiguration": optimizeFor,
		"cacheKeyQueryRule":        cacheQuery,
	}

	if opts.Header != "" {
		newOrigin["header"] = opts.Header
	}

	if originType == types.OriginTypeObjectStorage {
		if opts.BucketName == "" {
			return types.OriginPath{}, ErrBucketNameRequired
		}
		newOrigin["bucketName"] = opts.BucketName
		if opts.FileExtensions != "" {
			newOrigin["fileExtension"] = opts.FileExtensions
		}
	}

	raw, err := m.transport.Call(pathService, "createOriginPath", []any{newOrigin}, nil)
	if err != nil {
		return types.OriginPath{}, err
	}
	var created []types.OriginPath
	if err := json.Unmarshal(raw, &created); err != nil {
		return types.OriginPath{}, err
	}
	if len(created) == 0 {
		return types.OriginPath{}, fmt.Errorf("createOriginPath returned no records for path %s", opts.Path)
	}
	// createOriginPath answers with an array holding the one new record.
	return created[0], nil
}

// RemoveOrigin deletes the origin-pull mapping identified by (uniqueID,
// path) and returns the service's raw acknowledgement string.
func (m *Manager) RemoveOrigin(uniqueID, path string) (string, error) {
	raw, err := m.transport.Call(pathService, "deleteOriginPath", []any{uniqueID, path}, nil)
	if err != nil {
		return "", err
	}
	var ack string
	if err := json.Unmarshal(raw, &ack); err != nil {
		// Non-string acknowledgements (bool etc.) come back verbatim.
		return string(raw), nil
	}
	return ack, nil
}

// Purge submits a purge for a path under the given mapping and returns
// the purge records the service produced. Unlike the other single-record
// operations, the collection is returned whole; callers index into it.
func (m *Manager) Purge(uniqueID, path string) ([]types.PurgeRecord, error) {
	raw, err := m.transport.Call(purgeService, "createPurge", []any{uniqueID, path}, nil)
	if err != nil {
		return nil, err
	}
	var records []types.PurgeRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UsageOpts controls the usage metrics window. When StartDate and EndDate
// are both empty the window defaults to the last Days days (30 when zero).
// Frequency defaults to aggregate and is forwarded without local checks.
type UsageOpts struct {
	StartDate string
	EndDate   string
	Days      int
	Frequency types.MetricFrequency
}

// UsageMetrics queries usage statistics for a mapping over a resolved
// date window. Dates must use the "2006-01-02 15:04:05" layout; a parse
// failure propagates unmodified.
func (m *Manager) UsageMetrics(uniqueID string, opts UsageOpts) (types.UsageMetrics, error) {
	days := opts.Days
	if days == 0 {
		days = 30
	}
	frequency := opts.Frequency
	if frequency == "" {
		frequency = types.FrequencyAggregate
	}

	start, end, err := resolveUsageWindow(opts.StartDate, opts.EndDate, days, m.now())
	if err != nil {
		return types.UsageMetrics{}, err
	}

	raw, err := m.transport.Call(metricsService, "getMappingUsageMetrics",
		[]any{uniqueID, start.Unix(), end.Unix(), string(frequency)}, nil)
	if err != nil {
		return types.UsageMetrics{}, err
	}
	var usage []types.UsageMetrics
	if err := json.Unmarshal(raw, &usage); err != nil {
		return types.UsageMetrics{}, err
	}
	if len(usage) == 0 {
		return types.UsageMetrics{}, fmt.Errorf("getMappingUsageMetrics returned no records for unique id %s", uniqueID)
	}
	// getMappingUsageMetrics answers with an array holding one record.
	return usage[0], nil
}

// resolveUsageWindow applies the metrics date rules: both dates parse with
// the fixed layout, one date alone is invalid, neither means the last
// `days` days ending at now.
func resolveUsageWindow(startDate, endDate string, days int, now time.Time) (time.Time, time.Time, error) {
	if startDate != "" && endDate != "" {
		start, err := time.Parse(usageDateLayout, startDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := time.Parse(usageDateLayout, endDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start, end, nil
	}
	if (startDate != "") != (endDate != "") {
		return time.Time{}, time.Time{}, ErrDateRangeIncomplete
	}
	return now.AddDate(0, 0, -days), now, nil
}
