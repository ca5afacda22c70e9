package config

import (
	"fmt"

	"github.com/adverxo/prebid-bidder/util/jsonutil"
)

// FilterMode is the comparison approach of a user sync filter rule.
type FilterMode string

const (
	FilterModeInclude FilterMode = "include"
	FilterModeExclude FilterMode = "exclude"
)

// BiddersWildcard matches every bidder when used as the bidders list of a filter rule.
const BiddersWildcard = "*"

// UserSync is the publisher's user sync configuration.
type UserSync struct {
	SyncEnabled    bool           `mapstructure:"sync_enabled" json:"syncEnabled"`
	FilterSettings FilterSettings `mapstructure:"filter_settings" json:"filterSettings"`
}

// FilterSettings holds the optional rules per sync method. A nil rule permits nobody.
type FilterSettings struct {
	All    *FilterRule `mapstructure:"all" json:"all,omitempty"`
	IFrame *FilterRule `mapstructure:"iframe" json:"iframe,omitempty"`
	Image  *FilterRule `mapstructure:"image" json:"image,omitempty"`
}

// FilterRule lists bidders, either "*" or explicit codes, and whether they are included or excluded.
type FilterRule struct {
	Bidders jsonutil.ItemOrItemArray[string] `mapstructure:"bidders" json:"bidders"`
	Filter  FilterMode                       `mapstructure:"filter" json:"filter"`
}

// AllBidders reports whether the rule uses the wildcard instead of an explicit list.
func (r FilterRule) AllBidders() bool {
	return len(r.Bidders) == 1 && r.Bidders[0] == BiddersWildcard
}

func (cfg *UserSync) validate(errs []error) []error {
	rules := []struct {
		name string
		rule *FilterRule
	}{
		{name: "all", rule: cfg.FilterSettings.All},
		{name: "iframe", rule: cfg.FilterSettings.IFrame},
		{name: "image", rule: cfg.FilterSettings.Image},
	}

	for _, r := range rules {
		if r.rule == nil {
			continue
		}
		if r.rule.Filter != FilterModeInclude && r.rule.Filter != FilterModeExclude {
			errs = append(errs, fmt.Errorf("publisher.user_sync.filter_settings.%s.filter must be %q or %q, got %q", r.name, FilterModeInclude, FilterModeExclude, r.rule.Filter))
		}
	}
	return errs
}
