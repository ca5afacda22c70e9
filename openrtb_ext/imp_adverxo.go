package openrtb_ext

import (
	"bytes"
	"errors"
	"math"
	"strconv"
)

// ExtImpAdverxo defines the contract for bid request params of the adverxo bidder.
type ExtImpAdverxo struct {
	Host     string   `json:"host"`
	AdUnitID AdUnitID `json:"adUnitId"`
	Auth     string   `json:"auth"`
}

// AdUnitID is a numeric ad unit id. Integral values written with a fraction or an exponent,
// such as 1.0 or 1e2, name the same ad unit as their plain integer form.
type AdUnitID int64

var errAdUnitIDNotIntegral = errors.New("adUnitId must be an integral number")

func (id *AdUnitID) UnmarshalJSON(data []byte) error {
	parsed, err := ParseAdUnitID(data)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseAdUnitID reads a JSON number holding an ad unit id.
func ParseAdUnitID(value []byte) (AdUnitID, error) {
	value = bytes.TrimSpace(value)
	if len(value) == 0 || (value[0] != '-' && (value[0] < '0' || value[0] > '9')) {
		return 0, errAdUnitIDNotIntegral
	}

	if id, err := strconv.ParseInt(string(value), 10, 64); err == nil {
		return AdUnitID(id), nil
	}

	f, err := strconv.ParseFloat(string(value), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, errAdUnitIDNotIntegral
	}
	// 2^63 itself does not fit in an int64.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errAdUnitIDNotIntegral
	}
	return AdUnitID(f), nil
}
