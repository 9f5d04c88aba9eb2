package crosschain

import (
	"encoding/json"
	"maps"

	"github.com/bridgescan/bridgenode/pkg/chains"
	"github.com/bridgescan/bridgenode/pkg/optional"
)

type TransferStatus int

const (
	StatusTransferring TransferStatus = iota
	StatusReceived
	StatusFailed
)

func (s TransferStatus) String() string {
	switch s {
	case StatusTransferring:
		return "Transferring"
	case StatusReceived:
		return "Received"
	case StatusFailed:
		return "Failed"
	}
	return "Unknown"
}

type TransferType int

const (
	TypeTransfer TransferType = iota + 1
	TypeReceive
)

func (t TransferType) String() string {
	switch t {
	case TypeTransfer:
		return "Transfer"
	case TypeReceive:
		return "Receive"
	}
	return "Unknown"
}

// Extra carries JSON keys the node does not model. They are kept verbatim.
type Extra map[string]json.RawMessage

// Token is a token descriptor as returned by the indexer.
type Token struct {
	Address      string `json:"address"`
	Symbol       string `json:"symbol"`
	Decimals     int    `json:"decimals"`
	ChainID      string `json:"chainId,omitempty"`
	IssueChainID int64  `json:"issueChainId,omitempty"`
	Icon         string `json:"icon,omitempty"`

	Extra Extra `json:"-"`
}

var tokenKeys = []string{"address", "symbol", "decimals", "chainId", "issueChainId", "icon"}

type tokenJSON Token

func (t Token) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(tokenJSON(t), t.Extra)
}

func (t *Token) UnmarshalJSON(data []byte) error {
	var v tokenJSON
	extra, err := unmarshalWithExtra(data, &v, tokenKeys)
	if err != nil {
		return err
	}
	*t = Token(v)
	t.Extra = extra
	return nil
}

func (t *Token) clone() *Token {
	if t == nil {
		return nil
	}
	c := *t
	c.Extra = maps.Clone(t.Extra)
	return &c
}

// TransferFields are copied from raw to normalized records without change.
type TransferFields struct {
	ID                    string         `json:"id"`
	TransferAmount        json.Number    `json:"transferAmount"`
	FromAddress           string         `json:"fromAddress"`
	ToAddress             string         `json:"toAddress"`
	TransferTransactionID string         `json:"transferTransactionId"`
	ReceiveTransactionID  string         `json:"receiveTransactionId"`
	TransferTime          int64          `json:"transferTime"`
	ReceiveTime           int64          `json:"receiveTime"`
	ReceiveAmount         json.Number    `json:"receiveAmount"`
	ReceiveToken          *Token         `json:"receiveToken,omitempty"`
	TransferBlockHeight   int64          `json:"transferBlockHeight"`
	Status                TransferStatus `json:"status"`
	Type                  TransferType   `json:"type"`
	Progress              int            `json:"progress"`
	ProgressUpdateTime    int64          `json:"progressUpdateTime"`

	Extra Extra `json:"-"`
}

var transferFieldKeys = []string{
	"id", "transferAmount", "fromAddress", "toAddress", "transferTransactionId",
	"receiveTransactionId", "transferTime", "receiveTime", "receiveAmount", "receiveToken",
	"transferBlockHeight", "status", "type", "progress", "progressUpdateTime",
}

var recordKeys = append([]string{"fromChainId", "toChainId", "transferToken"}, transferFieldKeys...)

func (f TransferFields) clone() TransferFields {
	c := f
	c.ReceiveToken = f.ReceiveToken.clone()
	c.Extra = maps.Clone(f.Extra)
	return c
}

// RawTransferRecord is a cross-chain transfer exactly as the indexer reports it.
type RawTransferRecord struct {
	TransferFields
	FromChainID   string `json:"fromChainId"`
	ToChainID     string `json:"toChainId"`
	TransferToken *Token `json:"transferToken,omitempty"`
}

type rawTransferRecordJSON RawTransferRecord

func (r RawTransferRecord) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(rawTransferRecordJSON(r), r.Extra)
}

func (r *RawTransferRecord) UnmarshalJSON(data []byte) error {
	var v rawTransferRecordJSON
	extra, err := unmarshalWithExtra(data, &v, recordKeys)
	if err != nil {
		return err
	}
	*r = RawTransferRecord(v)
	r.Extra = extra
	return nil
}

// TransferRecord is a normalized transfer: canonical chain ids and a display
// symbol on the transfer token.
type TransferRecord struct {
	TransferFields
	FromChainID   chains.ChainID `json:"fromChainId"`
	ToChainID     chains.ChainID `json:"toChainId"`
	TransferToken *Token         `json:"transferToken,omitempty"`
}

type transferRecordJSON TransferRecord

func (r TransferRecord) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(transferRecordJSON(r), r.Extra)
}

func (r *TransferRecord) UnmarshalJSON(data []byte) error {
	var v transferRecordJSON
	extra, err := unmarshalWithExtra(data, &v, recordKeys)
	if err != nil {
		return err
	}
	*r = TransferRecord(v)
	r.Extra = extra
	return nil
}

// TransfersRequest is the list payload of the indexer. Items stays absent
// when the indexer did not send a list at all.
type TransfersRequest struct {
	Items      optional.Value[[]RawTransferRecord] `json:"items"`
	TotalCount int64                               `json:"totalCount"`
}
