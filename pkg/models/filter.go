package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// QueryFilter narrows a scan listing. Start is inclusive, End exclusive,
// Barcode is a substring match. Zero values mean "no constraint".
type QueryFilter struct {
	Start   *time.Time
	End     *time.Time
	Barcode string
	Limit   int
	Offset  int
}

// Query parameter names understood by GET /scans/.
const (
	ParamStartDate = "start_date"
	ParamEndDate   = "end_date"
	ParamBarcode   = "barcode"
	ParamLimit     = "limit"
	ParamSkip      = "skip"
)

// Values encodes the filter as URL query parameters. Omitted fields are
// left out entirely.
func (f QueryFilter) Values() url.Values {
	v := url.Values{}
	if f.Start != nil {
		v.Set(ParamStartDate, f.Start.Format(time.RFC3339))
	}
	if f.End != nil {
		v.Set(ParamEndDate, f.End.Format(time.RFC3339))
	}
	if f.Barcode != "" {
		v.Set(ParamBarcode, f.Barcode)
	}
	if f.Limit > 0 {
		v.Set(ParamLimit, strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		v.Set(ParamSkip, strconv.Itoa(f.Offset))
	}
	return v
}

// Matches reports whether s satisfies the time and barcode constraints,
// using the same case-insensitive substring rule as the server. Limit and
// Offset are ignored.
func (f QueryFilter) Matches(s Scan) bool {
	if f.Start != nil && s.ScannedAt.Before(*f.Start) {
		return false
	}
	if f.End != nil && !s.ScannedAt.Before(*f.End) {
		return false
	}
	if f.Barcode != "" && !strings.Contains(strings.ToLower(s.Barcode), strings.ToLower(f.Barcode)) {
		return false
	}
	return true
}

var filterTimeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// ParseFilterTime parses user or query-string input into a time. RFC3339
// values keep their zone; the zone-less layouts are interpreted in loc.
// Blank input returns nil.
func ParseFilterTime(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range filterTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q (use YYYY-MM-DD or YYYY-MM-DDTHH:MM[:SS])", s)
}
