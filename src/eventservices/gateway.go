package eventservices

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/idiazm/optrack/src/eventmodels"
	"github.com/idiazm/optrack/src/utils"
)

// GatewayDataSource implements MarketDataSource against the brokerage
// gateway's REST surface. Each fetch is one GET returning a JSON document;
// the gateway is the single venue the portfolio talks to.
type GatewayDataSource struct {
	baseURL         string
	bearerToken     string
	historicalYears int
	client          *http.Client
}

func NewGatewayDataSource(baseURL string, bearerToken string, historicalYears int) *GatewayDataSource {
	return &GatewayDataSource{
		baseURL:         strings.TrimRight(baseURL, "/"),
		bearerToken:     bearerToken,
		historicalYears: historicalYears,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (g *GatewayDataSource) symbolsParam(assets []*eventmodels.Asset) string {
	codes := make([]string, 0, len(assets))
	for _, asset := range assets {
		codes = append(codes, asset.Code)
	}

	return strings.Join(codes, ",")
}

type gatewayIdentitiesDTO struct {
	Identities map[string]int64 `json:"identities"`
}

func (g *GatewayDataSource) FetchContractIdentities(ctx context.Context, assets []*eventmodels.Asset) (map[string]eventmodels.ContractID, error) {
	requestURL := fmt.Sprintf("%s/v1/contracts?symbols=%s", g.baseURL, url.QueryEscape(g.symbolsParam(assets)))

	resp, err := utils.FetchJSON[gatewayIdentitiesDTO](ctx, g.client, requestURL, g.bearerToken)
	if err != nil {
		return nil, fmt.Errorf("GatewayDataSource.FetchContractIdentities: %w", err)
	}

	identities := make(map[string]eventmodels.ContractID, len(resp.Identities))
	for code, id := range resp.Identities {
		identities[code] = eventmodels.ContractID(id)
	}

	return identities, nil
}

type gatewayQuotesDTO struct {
	Quotes []*eventmodels.AssetQuote `json:"quotes"`
}

func (g *GatewayDataSource) FetchQuotes(ctx context.Context, assets []*eventmodels.Asset) ([]*eventmodels.AssetQuote, error) {
	requestURL := fmt.Sprintf("%s/v1/quotes?symbols=%s", g.baseURL, url.QueryEscape(g.symbolsParam(assets)))

	resp, err := utils.FetchJSON[gatewayQuotesDTO](ctx, g.client, requestURL, g.bearerToken)
	if err != nil {
		return nil, fmt.Errorf("GatewayDataSource.FetchQuotes: %w", err)
	}

	return resp.Quotes, nil
}

type gatewayBarsDTO struct {
	Bars []eventmodels.CandleDTO `json:"bars"`
}

func (g *GatewayDataSource) FetchHistoricalBars(ctx context.Context, asset *eventmodels.Asset) ([]*eventmodels.Candle, error) {
	requestURL := fmt.Sprintf("%s/v1/history/bars?symbol=%s&years=%d", g.baseURL, url.QueryEscape(asset.Code), g.historicalYears)

	resp, err := utils.FetchJSON[gatewayBarsDTO](ctx, g.client, requestURL, g.bearerToken)
	if err != nil {
		return nil, fmt.Errorf("GatewayDataSource.FetchHistoricalBars: %s: %w", asset.Code, err)
	}

	bars := make([]*eventmodels.Candle, 0, len(resp.Bars))
	for _, dto := range resp.Bars {
		bar, err := dto.ToModel()
		if err != nil {
			return nil, fmt.Errorf("GatewayDataSource.FetchHistoricalBars: %s: %w", asset.Code, err)
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

type gatewayIVPointsDTO struct {
	Points []eventmodels.IVPointDTO `json:"points"`
}

func (g *GatewayDataSource) FetchHistoricalIV(ctx context.Context, asset *eventmodels.Asset) ([]*eventmodels.IVPoint, error) {
	requestURL := fmt.Sprintf("%s/v1/history/iv?symbol=%s&years=%d", g.baseURL, url.QueryEscape(asset.Code), g.historicalYears)

	resp, err := utils.FetchJSON[gatewayIVPointsDTO](ctx, g.client, requestURL, g.bearerToken)
	if err != nil {
		return nil, fmt.Errorf("GatewayDataSource.FetchHistoricalIV: %s: %w", asset.Code, err)
	}

	points := make([]*eventmodels.IVPoint, 0, len(resp.Points))
	for _, dto := range resp.Points {
		point, err := dto.ToModel()
		if err != nil {
			return nil, fmt.Errorf("GatewayDataSource.FetchHistoricalIV: %s: %w", asset.Code, err)
		}

		points = append(points, point)
	}

	return points, nil
}

type gatewayContractsDTO struct {
	Contracts []eventmodels.OptionContractDTO `json:"contracts"`
}

func (g *GatewayDataSource) FetchOptionChain(ctx context.Context, asset *eventmodels.Asset) ([]*eventmodels.OptionContract, error) {
	requestURL := fmt.Sprintf("%s/v1/chains?symbol=%s", g.baseURL, url.QueryEscape(asset.Code))

	resp, err := utils.FetchJSON[gatewayContractsDTO](ctx, g.client, requestURL, g.bearerToken)
	if err != nil {
		return nil, fmt.Errorf("GatewayDataSource.FetchOptionChain: %s: %w", asset.Code, err)
	}

	return convertContracts(resp.Contracts)
}

func (g *GatewayDataSource) FetchOptions(ctx context.Context, contractIDs []eventmodels.ContractID) ([]*eventmodels.OptionContract, error) {
	ids := make([]string, 0, len(contractIDs))
	for _, contractID := range contractIDs {
		ids = append(ids, strconv.FormatInt(int64(contractID), 10))
	}

	requestURL := fmt.Sprintf("%s/v1/options?ids=%s", g.baseURL, url.QueryEscape(strings.Join(ids, ",")))

	resp, err := utils.FetchJSON[gatewayContractsDTO](ctx, g.client, requestURL, g.bearerToken)
	if err != nil {
		return nil, fmt.Errorf("GatewayDataSource.FetchOptions: %w", err)
	}

	return convertContracts(resp.Contracts)
}

func convertContracts(dtos []eventmodels.OptionContractDTO) ([]*eventmodels.OptionContract, error) {
	contracts := make([]*eventmodels.OptionContract, 0, len(dtos))
	for _, dto := range dtos {
		contract, err := dto.ToModel()
		if err != nil {
			return nil, fmt.Errorf("convertContracts: %w", err)
		}

		contracts = append(contracts, contract)
	}

	return contracts, nil
}
