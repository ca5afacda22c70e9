package adverxo

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"text/template"

	"github.com/adverxo/prebid-bidder/adapters"
	"github.com/adverxo/prebid-bidder/config"
	"github.com/adverxo/prebid-bidder/errortypes"
	"github.com/adverxo/prebid-bidder/floors"
	"github.com/adverxo/prebid-bidder/logger"
	"github.com/adverxo/prebid-bidder/macros"
	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"github.com/adverxo/prebid-bidder/ortb"
	"github.com/adverxo/prebid-bidder/privacy"
	"github.com/adverxo/prebid-bidder/usersync"
	"github.com/adverxo/prebid-bidder/util/jsonutil"
	"github.com/adverxo/prebid-bidder/util/ptrutil"
	"github.com/buger/jsonparser"
	"github.com/prebid/openrtb/v20/openrtb2"
)

// callerIP asks the exchange to use the address of the connecting client.
const callerIP = "caller"

type adapter struct {
	name      openrtb_ext.BidderName
	endpoint  *template.Template
	ctx       ortb.Context
	publisher config.Publisher
	responses *ortb.Converter
}

type adUnitKey struct {
	host string
	id   int64
	auth string
}

type adUnitGroup struct {
	key         adUnitKey
	bidRequests []*adapters.BidRequest
}

// Builder builds a new instance of the Adverxo adapter for the given bidder with the given config.
func Builder(bidderName openrtb_ext.BidderName, cfg config.Adapter, server config.Server) (adapters.Bidder, error) {
	endpoint, err := template.New("endpointTemplate").Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("unable to parse endpoint url template: %v", err)
	}

	currency := cfg.Currency
	if currency == "" {
		currency = config.DefaultCurrency
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = config.DefaultTTL
	}

	bidder := &adapter{
		name:     bidderName,
		endpoint: endpoint,
		ctx: ortb.Context{
			Currency:   currency,
			TTL:        ttl,
			NetRevenue: cfg.NetRevenue,
			Features:   cfg.Features,
		},
		publisher: server.Publisher,
	}
	bidder.responses = ortb.NewConverter(bidder.ctx, ortb.Hooks{BidResponse: bidder.buildBidResponse})
	return bidder, nil
}

func (a *adapter) IsBidRequestValid(bidRequest *adapters.BidRequest) bool {
	if bidRequest == nil || !isNonEmptyObject(bidRequest.Params) {
		logger.Warnf("Adverxo Bid Adapter: bid params must be provided.")
		return false
	}
	params := bidRequest.Params

	if !hasAdUnitID(params) {
		logger.Warnf("Adverxo Bid Adapter: adUnitId bid param is required and must be a number")
		return false
	}

	if auth, dataType, _, err := jsonparser.Get(params, "auth"); err != nil || dataType != jsonparser.String || len(auth) == 0 {
		logger.Warnf("Adverxo Bid Adapter: auth bid param is required and must be a string")
		return false
	}

	if host, dataType, _, err := jsonparser.Get(params, "host"); err != nil || dataType != jsonparser.String || len(host) == 0 {
		logger.Warnf("Adverxo Bid Adapter: host bid param is required and must be a string")
		return false
	}

	return true
}

func isNonEmptyObject(data []byte) bool {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil || dataType != jsonparser.Object {
		return false
	}

	keys := 0
	jsonparser.ObjectEach(value, func(_ []byte, _ []byte, _ jsonparser.ValueType, _ int) error {
		keys++
		return nil
	})
	return keys > 0
}

func (a *adapter) BuildRequests(bidRequests []*adapters.BidRequest, bidderRequest *adapters.BidderRequest) ([]*adapters.RequestData, []error) {
	if bidderRequest == nil {
		bidderRequest = &adapters.BidderRequest{}
	}

	groups, errs := groupByAdUnit(bidRequests)
	if len(groups) == 0 {
		return nil, errs
	}

	publisher := a.publisher
	if bidderRequest.Publisher != nil {
		publisher = *bidderRequest.Publisher
	}

	regs, regsErrs := privacy.BuildRegulations(bidderRequest.Signals, publisher.Coppa)
	errs = append(errs, regsErrs...)

	bidderCode := bidderRequest.BidderCode
	if bidderCode == "" {
		bidderCode = a.name.String()
	}
	syncMethod := usersync.SelectSyncMethod(publisher.UserSync, bidderCode)

	converter := ortb.NewConverter(a.ctx, ortb.Hooks{
		Request: a.requestHook(regs, syncMethod),
		Imp:     a.buildImp,
	})

	requests := make([]*adapters.RequestData, 0, len(groups))
	for _, group := range groups {
		request, groupErrs := a.buildAdUnitRequest(converter, group, bidderRequest)
		errs = append(errs, groupErrs...)
		if request != nil {
			requests = append(requests, request)
		}
	}
	return requests, errs
}

// hasAdUnitID reports whether params carry a non zero, integral numeric adUnitId.
func hasAdUnitID(params []byte) bool {
	value, dataType, _, err := jsonparser.Get(params, "adUnitId")
	if err != nil || dataType != jsonparser.Number {
		return false
	}
	adUnitID, err := openrtb_ext.ParseAdUnitID(value)
	return err == nil && adUnitID != 0
}

// groupByAdUnit batches bid requests by their destination ad unit. Groups keep the order in
// which their ad unit first appears and members keep their input order.
func groupByAdUnit(bidRequests []*adapters.BidRequest) ([]*adUnitGroup, []error) {
	var errs []error
	var groups []*adUnitGroup
	byKey := make(map[adUnitKey]*adUnitGroup)

	for _, bidRequest := range bidRequests {
		if bidRequest == nil {
			continue
		}

		var params openrtb_ext.ExtImpAdverxo
		if err := jsonutil.Unmarshal(bidRequest.Params, &params); err != nil {
			errs = append(errs, &errortypes.BadInput{
				Message: fmt.Sprintf("Invalid params of bid request %s: %s", bidRequest.BidID, err.Error()),
			})
			continue
		}

		key := adUnitKey{host: params.Host, id: int64(params.AdUnitID), auth: params.Auth}
		group, ok := byKey[key]
		if !ok {
			group = &adUnitGroup{key: key}
			byKey[key] = group
			groups = append(groups, group)
		}
		group.bidRequests = append(group.bidRequests, bidRequest)
	}

	return groups, errs
}

func (a *adapter) buildAdUnitRequest(converter *ortb.Converter, group *adUnitGroup, bidderRequest *adapters.BidderRequest) (*adapters.RequestData, []error) {
	request, errs := converter.ToORTB(group.bidRequests, bidderRequest)
	if request == nil {
		return nil, errs
	}

	uri, err := a.buildEndpointURL(group.key)
	if err != nil {
		return nil, append(errs, err)
	}

	body, err := jsonutil.Marshal(request)
	if err == nil {
		body, err = privacy.WriteCOPPA(body, request.Regs)
	}
	if err != nil {
		return nil, append(errs, &errortypes.FailedToMarshal{Message: err.Error()})
	}

	headers := http.Header{}
	headers.Add("Content-Type", "application/json;charset=utf-8")
	headers.Add("Accept", "application/json")
	headers.Add("x-openrtb-version", "2.5")
	if request.Device != nil && request.Device.UA != "" {
		headers.Add("User-Agent", request.Device.UA)
	}

	return &adapters.RequestData{
		Method:  http.MethodPost,
		Uri:     uri,
		Body:    body,
		Headers: headers,
		ImpIDs:  openrtb_ext.GetImpIDs(request.Imp),
		Bids:    group.bidRequests,
	}, errs
}

func (a *adapter) buildEndpointURL(key adUnitKey) (string, error) {
	endpointParams := macros.EndpointTemplateParams{
		Host:      key.host,
		AdUnit:    strconv.FormatInt(key.id, 10),
		AccountID: key.auth,
	}
	return macros.ResolveMacros(a.endpoint, endpointParams)
}

func (a *adapter) requestHook(regs *openrtb2.Regs, syncMethod usersync.SyncMethod) func(ortb.RequestBuilder, []openrtb2.Imp, *adapters.BidderRequest) (*openrtb2.BidRequest, error) {
	return func(build ortb.RequestBuilder, imps []openrtb2.Imp, bidderRequest *adapters.BidderRequest) (*openrtb2.BidRequest, error) {
		request, err := build(imps, bidderRequest)
		if err != nil {
			return nil, err
		}

		if request.Device == nil {
			request.Device = &openrtb2.Device{}
		}
		request.Device.IP = callerIP

		if regs != nil {
			regsCopy := *regs
			request.Regs = &regsCopy
		}

		requestExt := openrtb_ext.ExtRequestAdverxo{AvxAddVastURL: 1}
		if syncMethod != usersync.SyncMethodNone {
			requestExt.AvxUserSync = ptrutil.ToPtr(int(syncMethod))
		}
		vendorExt, err := jsonutil.Marshal(requestExt)
		if err != nil {
			return nil, &errortypes.FailedToMarshal{Message: err.Error()}
		}
		if request.Ext, err = mergeExt(request.Ext, vendorExt); err != nil {
			return nil, &errortypes.BadInput{
				Message: fmt.Sprintf("Invalid request ext in first party data: %s", err.Error()),
			}
		}
		return request, nil
	}
}

// mergeExt writes the top level keys of ext over base, keeping the other keys of base. An empty
// or null base is replaced by ext.
func mergeExt(base, ext []byte) ([]byte, error) {
	base = bytes.TrimSpace(base)
	if len(base) == 0 || bytes.Equal(base, []byte("null")) {
		return ext, nil
	}

	merged := append([]byte(nil), base...)
	err := jsonparser.ObjectEach(ext, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		if dataType == jsonparser.String {
			quoted, err := jsonutil.Marshal(string(value))
			if err != nil {
				return err
			}
			value = quoted
		}

		var err error
		merged, err = jsonparser.Set(merged, value, string(key))
		return err
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (a *adapter) buildImp(build ortb.ImpBuilder, bidRequest *adapters.BidRequest) (*openrtb2.Imp, error) {
	imp, err := build(bidRequest)
	if err != nil {
		return nil, err
	}

	if floor, ok := floors.Resolve(bidRequest.FloorQuerier(), a.ctx.Currency); ok {
		imp.BidFloor = floor
		imp.BidFloorCur = a.ctx.Currency
	}
	return imp, nil
}

func (a *adapter) InterpretResponse(response *adapters.ResponseData, request *adapters.RequestData) ([]*adapters.Bid, []error) {
	if response == nil || request == nil {
		return nil, nil
	}

	if adapters.IsResponseStatusCodeNoContent(response) {
		return nil, nil
	}

	if err := adapters.CheckResponseStatusCodeForErrors(response); err != nil {
		return nil, []error{err}
	}

	if len(response.Body) == 0 {
		return nil, nil
	}

	var bidResponse openrtb2.BidResponse
	if err := jsonutil.Unmarshal(normalizeMarkup(response.Body), &bidResponse); err != nil {
		return nil, []error{&errortypes.BadServerResponse{
			Message: fmt.Sprintf("Bad server response: %s", err.Error()),
		}}
	}

	var ortbRequest openrtb2.BidRequest
	if err := jsonutil.Unmarshal(request.Body, &ortbRequest); err != nil {
		return nil, []error{&errortypes.BadInput{
			Message: fmt.Sprintf("Unable to decode the auction request: %s", err.Error()),
		}}
	}

	return a.responses.FromORTB(&bidResponse, &ortbRequest, request.Bids)
}

// normalizeMarkup turns markup delivered as a JSON object into a JSON string so the
// response decodes into OpenRTB bids. Bodies it cannot walk are returned unchanged.
func normalizeMarkup(body []byte) []byte {
	type markupPath struct {
		seatBid, bid int
		adm          []byte
	}

	var paths []markupPath
	seatBidIndex := 0
	jsonparser.ArrayEach(body, func(seatBid []byte, _ jsonparser.ValueType, _ int, _ error) {
		bidIndex := 0
		jsonparser.ArrayEach(seatBid, func(bid []byte, _ jsonparser.ValueType, _ int, _ error) {
			if adm, dataType, _, err := jsonparser.Get(bid, "adm"); err == nil && dataType == jsonparser.Object {
				paths = append(paths, markupPath{seatBid: seatBidIndex, bid: bidIndex, adm: adm})
			}
			bidIndex++
		}, "bid")
		seatBidIndex++
	}, "seatbid")

	normalized := body
	for _, path := range paths {
		encoded, err := jsonutil.Marshal(string(path.adm))
		if err != nil {
			return body
		}
		normalized, err = jsonparser.Set(normalized, encoded,
			"seatbid", fmt.Sprintf("[%d]", path.seatBid), "bid", fmt.Sprintf("[%d]", path.bid), "adm")
		if err != nil {
			return body
		}
	}
	return normalized
}

func (a *adapter) buildBidResponse(build ortb.BidResponseBuilder, bid *openrtb2.Bid, bidCtx *ortb.BidContext) (*adapters.Bid, error) {
	if a.ctx.Features.Native {
		if mediaType, err := a.responses.MediaType(bid, bidCtx.Imp); err == nil && mediaType == openrtb_ext.BidTypeNative {
			bid.AdM = unwrapNative(bid.AdM)
		}
	}

	result, err := build(bid, bidCtx)
	if err != nil {
		return nil, err
	}

	if a.ctx.Features.Video && result.MediaType == openrtb_ext.BidTypeVideo {
		var bidExt openrtb_ext.ExtBidAdverxo
		if len(bid.Ext) > 0 {
			if err := jsonutil.Unmarshal(bid.Ext, &bidExt); err != nil {
				logger.Warnf("Adverxo Bid Adapter: ignoring invalid ext of bid %s: %v", bid.ID, err)
			}
		}

		if bidExt.AvxVastURL != "" {
			result.VastURL = bidExt.AvxVastURL
		}

		if isOutstream(bidCtx.BidRequest) {
			result.Renderer = newOutstreamRenderer(result, bidExt.AvxVideoRendererURL, bidCtx.BidRequest.Renderer)
		}
	}

	return result, nil
}

// unwrapNative returns the asset and link structure of native markup wrapped in a
// {"native": ...} object. Other markup is returned as is.
func unwrapNative(adm string) string {
	native, dataType, _, err := jsonparser.Get([]byte(adm), "native")
	if err != nil || dataType != jsonparser.Object {
		return adm
	}
	return string(native)
}

func isOutstream(bidRequest *adapters.BidRequest) bool {
	return bidRequest != nil &&
		bidRequest.MediaTypes.Video != nil &&
		bidRequest.MediaTypes.Video.Context == adapters.VideoContextOutstream
}

func (a *adapter) GetUserSyncs(syncOptions adapters.SyncOptions, responses []*adapters.ResponseData) []adapters.UserSync {
	syncs := []adapters.UserSync{}
	if len(responses) == 0 || (!syncOptions.IFrameEnabled && !syncOptions.PixelEnabled) {
		return syncs
	}

	for _, response := range responses {
		for _, instruction := range syncInstructions(response) {
			syncType := usersync.SyncMethod(instruction.Type).SyncType()
			if syncType == usersync.SyncTypeUnknown || instruction.URL == "" {
				logger.Warnf("Adverxo Bid Adapter: dropping user sync of type %d with url %q", instruction.Type, instruction.URL)
				continue
			}
			syncs = append(syncs, adapters.UserSync{Type: syncType, URL: instruction.URL})
		}
	}
	return syncs
}

func syncInstructions(response *adapters.ResponseData) []openrtb_ext.AdverxoSyncInstruction {
	if response == nil || len(response.Body) == 0 {
		return nil
	}

	ext, dataType, _, err := jsonparser.Get(response.Body, "ext")
	if err != nil || dataType != jsonparser.Object {
		return nil
	}

	var responseExt openrtb_ext.ExtBidResponseAdverxo
	if err := jsonutil.Unmarshal(ext, &responseExt); err != nil {
		logger.Warnf("Adverxo Bid Adapter: ignoring invalid user sync instructions: %v", err)
		return nil
	}
	return responseExt.AvxUserSync
}
