/*
Package openrtb_ext defines the Adverxo extensions to the OpenRTB 2.5 spec: the bidder
params, the vendor keys of the request, response and bid ext objects, and regs.ext.

The bidder params are validated by a BidderParamValidator, which relies on the json-schemas
from static/bidder-params/{bidder}.json
*/
package openrtb_ext
