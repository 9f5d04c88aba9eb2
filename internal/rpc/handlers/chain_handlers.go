package handlers

import (
	"net/http"

	"github.com/bridgescan/bridgenode/pkg/chains"
	"github.com/ethereum/go-ethereum/common"
)

type ChainInfo struct {
	chains.Chain
	WrappedNative string `json:"wrapped_native,omitempty"`
}

type ChainsResponse struct {
	Data []ChainInfo `json:"data"`
}

func ChainsGetHandler(r *http.Request, registry *chains.Registry) (ChainsResponse, error) {
	all := registry.Chains()
	resp := ChainsResponse{Data: make([]ChainInfo, 0, len(all))}
	for _, c := range all {
		resp.Data = append(resp.Data, ChainInfo{Chain: c, WrappedNative: wrappedNative(registry, c)})
	}
	return resp, nil
}

func wrappedNative(registry *chains.Registry, c chains.Chain) string {
	switch c.Type {
	case chains.ChainTypeEVM:
		if evm, ok := registry.EVM(c.ID); ok && evm.WrappedNative != (common.Address{}) {
			return evm.WrappedNative.Hex()
		}
	case chains.ChainTypeTron:
		if tron, ok := registry.Tron(c.ID); ok {
			return tron.WrappedNative
		}
	case chains.ChainTypeTon:
		if ton, ok := registry.Ton(c.ID); ok {
			return ton.WrappedNative
		}
	}
	return ""
}
