package indexer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bridgescan/bridgenode/pkg/chains"
	"github.com/bridgescan/bridgenode/pkg/crosschain"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	crossChainTransfersPath = "/api/app/cross-chain-transfers"
	successCode             = "20000"
	MaxResultCountLimit     = 1000
)

var (
	ErrUnexpectedStatus = errors.New("unexpected indexer response status")
	ErrAPI              = errors.New("indexer returned an error")
	ErrInvalidQuery     = errors.New("invalid transfer query")
)

// Query filters the indexer's transfer list. Empty fields are not sent.
type Query struct {
	FromChainID    string
	ToChainID      string
	FromAddress    string
	ToAddress      string
	Type           crosschain.TransferType
	SkipCount      int
	MaxResultCount int
}

func (q Query) params() map[string]string {
	p := map[string]string{
		"skipCount":      strconv.Itoa(q.SkipCount),
		"maxResultCount": strconv.Itoa(q.MaxResultCount),
	}
	set := func(key, value string) {
		if value != "" {
			p[key] = value
		}
	}
	set("fromChainId", q.FromChainID)
	set("toChainId", q.ToChainID)
	set("fromAddress", q.FromAddress)
	set("toAddress", q.ToAddress)
	if q.Type != 0 {
		p["type"] = strconv.Itoa(int(q.Type))
	}
	return p
}

// Validate checks paging bounds and, when the chain is known to the registry,
// the shape of the address filters.
func (q Query) Validate(registry *chains.Registry) error {
	if q.SkipCount < 0 {
		return fmt.Errorf("%w: skipCount must not be negative", ErrInvalidQuery)
	}
	if q.MaxResultCount < 0 || q.MaxResultCount > MaxResultCountLimit {
		return fmt.Errorf("%w: maxResultCount must be between 0 and %d", ErrInvalidQuery, MaxResultCountLimit)
	}
	if err := validateAddress(registry, q.FromChainID, q.FromAddress); err != nil {
		return fmt.Errorf("%w: fromAddress %v", ErrInvalidQuery, err)
	}
	if err := validateAddress(registry, q.ToChainID, q.ToAddress); err != nil {
		return fmt.Errorf("%w: toAddress %v", ErrInvalidQuery, err)
	}
	return nil
}

func validateAddress(registry *chains.Registry, apiChainID, address string) error {
	if address == "" || apiChainID == "" || registry == nil {
		return nil
	}
	chain, ok := registry.Chain(registry.Translate(apiChainID))
	if !ok {
		return nil
	}
	if !chains.ValidAddress(chain.Type, address) {
		return fmt.Errorf("%q is not a valid %s address", address, chain.Type)
	}
	return nil
}

type envelope struct {
	Code    string                      `json:"code"`
	Message string                      `json:"message"`
	Data    crosschain.TransfersRequest `json:"data"`
}

// Client talks to the bridge indexing API.
type Client struct {
	client *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(3).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(retryCondition)
	return &Client{client: client}
}

func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	return r.StatusCode() >= http.StatusInternalServerError
}

// FetchCrossChainTransfers returns one page of raw transfers. Items stay
// absent when the indexer omitted them.
func (c *Client) FetchCrossChainTransfers(ctx context.Context, q Query) (crosschain.TransfersRequest, error) {
	var body envelope
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(q.params()).
		SetResult(&body).
		Get(crossChainTransfersPath)
	if err != nil {
		return crosschain.TransfersRequest{}, fmt.Errorf("failed to fetch cross-chain transfers: %w", err)
	}
	if resp.IsError() {
		return crosschain.TransfersRequest{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode())
	}
	if body.Code != successCode {
		return crosschain.TransfersRequest{}, fmt.Errorf("%w: code %s: %s", ErrAPI, body.Code, body.Message)
	}

	zap.L().Debug("Fetched cross-chain transfers",
		zap.Int("skipCount", q.SkipCount),
		zap.Int("maxResultCount", q.MaxResultCount),
		zap.Int64("totalCount", body.Data.TotalCount),
	)
	return body.Data, nil
}
