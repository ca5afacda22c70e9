package floors

import (
	"math"
)

// Wildcard matches any media type or size in a floor query or rule.
const Wildcard = "*"

// Query is the floor lookup issued for a bid request.
type Query struct {
	Currency  string
	MediaType string
	Size      string
}

// Price is a floor as reported by a Querier.
type Price struct {
	Floor    float64 `json:"floor"`
	Currency string  `json:"currency"`
}

// Querier is the price floor capability attached to a bid request by the host.
type Querier interface {
	GetFloor(query Query) (*Price, error)
}

// QuerierFunc adapts a function to the Querier interface.
type QuerierFunc func(query Query) (*Price, error)

func (f QuerierFunc) GetFloor(query Query) (*Price, error) {
	return f(query)
}

// Resolve asks the querier for the floor of any media type and size in the settlement currency.
// The floor is usable only when it is a finite positive number in exactly the settlement currency.
// Every other outcome, including a querier which panics, reports no floor.
func Resolve(querier Querier, currency string) (floor float64, ok bool) {
	if querier == nil {
		return 0, false
	}

	defer func() {
		if r := recover(); r != nil {
			floor, ok = 0, false
		}
	}()

	price, err := querier.GetFloor(Query{
		Currency:  currency,
		MediaType: Wildcard,
		Size:      Wildcard,
	})
	if err != nil || price == nil {
		return 0, false
	}
	if price.Currency != currency {
		return 0, false
	}
	if math.IsNaN(price.Floor) || math.IsInf(price.Floor, 0) || price.Floor <= 0 {
		return 0, false
	}
	return price.Floor, true
}
