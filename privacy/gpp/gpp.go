package gpp

import (
	"errors"

	gpplib "github.com/prebid/go-gpp"
)

// Parse decodes a GPP string. Section level failures are joined into a single error.
func Parse(consent string) (gpplib.GppContainer, error) {
	container, errs := gpplib.Parse(consent)
	if len(errs) > 0 {
		return container, errors.Join(errs...)
	}
	return container, nil
}

// SectionIDs returns the section ids listed in the GPP header, in header order.
func SectionIDs(gpp gpplib.GppContainer) []int8 {
	if len(gpp.SectionTypes) == 0 {
		return nil
	}

	ids := make([]int8, 0, len(gpp.SectionTypes))
	for _, id := range gpp.SectionTypes {
		ids = append(ids, int8(id))
	}
	return ids
}
