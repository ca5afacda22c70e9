package config

import (
	"fmt"
	"text/template"

	validator "github.com/asaskevich/govalidator"
	"github.com/adverxo/prebid-bidder/macros"
)

const (
	DefaultCurrency = "USD"
	DefaultTTL      = 60
)

type Adapter struct {
	// Endpoint is a Golang Template. At runtime, the following Template variables will be replaced.
	//
	//   {{.Host}}      -- the host bid param of the ad unit
	//   {{.AdUnit}}    -- the adUnitId bid param
	//   {{.AccountID}} -- the auth bid param
	//
	// Values are substituted verbatim.
	Endpoint string `mapstructure:"endpoint"` // Required
	Disabled bool   `mapstructure:"disabled"`

	// Currency is the settlement currency. Floors in any other currency are ignored.
	Currency string `mapstructure:"currency"`
	// TTL is the default bid time-to-live in seconds when the exchange sets no bid.exp.
	TTL        int64 `mapstructure:"ttl"`
	NetRevenue bool  `mapstructure:"net_revenue"`

	Features Features `mapstructure:"features"`
}

// Features toggles media type support in the request builder and the response interpreter.
// Media types the bidder info does not declare stay off whatever the toggle says.
type Features struct {
	Native bool `mapstructure:"native"`
	Video  bool `mapstructure:"video"`
}

// Server carries host-wide settings handed to adapter builders.
type Server struct {
	ExternalUrl string
	// Publisher is the default publisher snapshot used when a bidder request carries none.
	Publisher Publisher
}

// validateAdapters validates adapter's endpoint and settlement currency
func validateAdapters(adapterMap map[string]Adapter, errs []error) []error {
	for adapterName, adapter := range adapterMap {
		if !adapter.Disabled {
			// Verify that every adapter has a valid endpoint associated with it
			errs = validateAdapterEndpoint(adapter.Endpoint, adapterName, errs)

			if err := validateCurrency(adapter.Currency); err != nil {
				errs = append(errs, fmt.Errorf("Invalid currency %q for adapter: %s. %v", adapter.Currency, adapterName, err))
			}
			if adapter.TTL < 0 {
				errs = append(errs, fmt.Errorf("Invalid ttl %d for adapter: %s. Must not be negative", adapter.TTL, adapterName))
			}
		}
	}
	return errs
}

const (
	dummyHost      string = "dummyhost.com"
	dummyAdUnit    string = "12"
	dummyAccountID string = "some_account"
)

// validateAdapterEndpoint makes sure that an adapter has a valid endpoint
// associated with it
func validateAdapterEndpoint(endpoint string, adapterName string, errs []error) []error {
	if endpoint == "" {
		return append(errs, fmt.Errorf("There's no default endpoint available for %s. Calls to this bidder/exchange will fail. "+
			"Please set adapters.%s.endpoint in your app config", adapterName, adapterName))
	}

	endpointTemplate, err := template.New("endpointTemplate").Parse(endpoint)
	if err != nil {
		return append(errs, fmt.Errorf("Invalid endpoint template: %s for adapter: %s. %v", endpoint, adapterName, err))
	}

	resolvedEndpoint, err := macros.ResolveMacros(endpointTemplate, macros.EndpointTemplateParams{
		Host:      dummyHost,
		AdUnit:    dummyAdUnit,
		AccountID: dummyAccountID,
	})
	if err != nil {
		return append(errs, fmt.Errorf("Unable to resolve endpoint: %s for adapter: %s. %v", endpoint, adapterName, err))
	}

	// Validating using both IsURL and IsRequestURL because IsURL allows relative paths
	// whereas IsRequestURL requires absolute path but fails to check other valid URL
	// format constraints.
	//
	// For example: IsURL will allow "abcd.com" but IsRequestURL won't
	// IsRequestURL will allow "http://http://abcd.com" but IsURL won't
	if !validator.IsURL(resolvedEndpoint) || !validator.IsRequestURL(resolvedEndpoint) {
		errs = append(errs, fmt.Errorf("The endpoint: %s for %s is not a valid URL", resolvedEndpoint, adapterName))
	}
	return errs
}
