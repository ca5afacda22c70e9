package floors

import (
	"fmt"
	"strings"
)

const ruleDelimiter = "|"

// Rules is a static floor table keyed by "mediaType|size". Either part of a key may be
// the wildcard. It implements Querier and is what fixtures and the sandbox attach to
// bid requests.
type Rules struct {
	Currency string             `json:"currency"`
	Values   map[string]float64 `json:"values,omitempty"`
	Default  float64            `json:"default,omitempty"`
}

// GetFloor returns the most specific matching rule, falling back to the default floor.
// A query in a foreign currency gets the table's own currency back so callers can detect it.
func (r Rules) GetFloor(query Query) (*Price, error) {
	if r.Currency == "" {
		return nil, fmt.Errorf("floor rules have no currency")
	}

	for _, key := range ruleKeys(query) {
		if value, ok := r.Values[key]; ok {
			return &Price{Floor: value, Currency: r.Currency}, nil
		}
	}

	if r.Default > 0 {
		return &Price{Floor: r.Default, Currency: r.Currency}, nil
	}
	return nil, nil
}

// ruleKeys lists the lookup keys from the most to the least specific.
func ruleKeys(query Query) []string {
	mediaType := strings.ToLower(orWildcard(query.MediaType))
	size := strings.ToLower(orWildcard(query.Size))

	keys := []string{
		mediaType + ruleDelimiter + size,
		mediaType + ruleDelimiter + Wildcard,
		Wildcard + ruleDelimiter + size,
		Wildcard + ruleDelimiter + Wildcard,
	}

	unique := keys[:0]
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}
	return unique
}

func orWildcard(value string) string {
	if value == "" {
		return Wildcard
	}
	return value
}
