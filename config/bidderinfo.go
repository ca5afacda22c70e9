package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"gopkg.in/yaml.v2"
)

// BidderInfo is the static metadata of a bidder, read from static/bidder-info/{bidder}.yaml.
type BidderInfo struct {
	Maintainer   *MaintainerInfo   `yaml:"maintainer" json:"maintainer"`
	Capabilities *CapabilitiesInfo `yaml:"capabilities" json:"capabilities"`
	// GVLVendorID is the IAB global vendor list id. 0 means unregistered.
	GVLVendorID uint16   `yaml:"gvlVendorID" json:"gvlVendorID"`
	Aliases     []string `yaml:"aliases" json:"aliases,omitempty"`
}

// MaintainerInfo specifies the support email address for a bidder.
type MaintainerInfo struct {
	Email string `yaml:"email" json:"email"`
}

// CapabilitiesInfo specifies the supported platforms for a bidder.
type CapabilitiesInfo struct {
	Site *PlatformInfo `yaml:"site" json:"site"`
}

// PlatformInfo specifies the supported media types for a bidder.
type PlatformInfo struct {
	MediaTypes []openrtb_ext.BidType `yaml:"mediaTypes" json:"mediaTypes"`
}

// LoadBidderInfoFromDisk parses {dir}/{bidder}.yaml.
func LoadBidderInfoFromDisk(dir string, bidder openrtb_ext.BidderName) (BidderInfo, error) {
	data, err := os.ReadFile(filepath.Join(dir, bidder.String()+".yaml"))
	if err != nil {
		return BidderInfo{}, err
	}
	return parseBidderInfo(bidder, data)
}

func parseBidderInfo(bidder openrtb_ext.BidderName, data []byte) (BidderInfo, error) {
	var info BidderInfo
	if err := yaml.UnmarshalStrict(data, &info); err != nil {
		return BidderInfo{}, fmt.Errorf("error parsing yaml for bidder %s: %v", bidder, err)
	}
	if err := info.validate(); err != nil {
		return BidderInfo{}, fmt.Errorf("invalid bidder info for %s: %v", bidder, err)
	}
	return info, nil
}

func (info BidderInfo) validate() error {
	if info.Capabilities == nil || info.Capabilities.Site == nil || len(info.Capabilities.Site.MediaTypes) == 0 {
		return errors.New("at least one site media type must be declared")
	}
	for _, mediaType := range info.Capabilities.Site.MediaTypes {
		if !isKnownBidType(mediaType) {
			return fmt.Errorf("unrecognized media type %q", mediaType)
		}
	}
	return nil
}

func isKnownBidType(mediaType openrtb_ext.BidType) bool {
	for _, known := range openrtb_ext.BidTypes() {
		if known == mediaType {
			return true
		}
	}
	return false
}

// SupportsMediaType reports whether the bidder declares the media type for site traffic.
func (info BidderInfo) SupportsMediaType(mediaType openrtb_ext.BidType) bool {
	if info.Capabilities == nil || info.Capabilities.Site == nil {
		return false
	}
	for _, declared := range info.Capabilities.Site.MediaTypes {
		if declared == mediaType {
			return true
		}
	}
	return false
}

// Features narrows the configured toggles to the media types the bidder declares. A media type
// is enabled only when it is both declared and switched on.
func (info BidderInfo) Features(toggles Features) Features {
	return Features{
		Native: toggles.Native && info.SupportsMediaType(openrtb_ext.BidTypeNative),
		Video:  toggles.Video && info.SupportsMediaType(openrtb_ext.BidTypeVideo),
	}
}
