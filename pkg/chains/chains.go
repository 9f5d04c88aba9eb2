package chains

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
)

// ChainID is the canonical chain identifier used throughout the node.
type ChainID string

func (c ChainID) String() string {
	return string(c)
}

const (
	AELF ChainID = "AELF"
	TDVV ChainID = "tDVV"
	TDVW ChainID = "tDVW"

	Ethereum   ChainID = "1"
	Sepolia    ChainID = "11155111"
	BSC        ChainID = "56"
	BSCTestnet ChainID = "97"

	Tron     ChainID = "728126428"
	TronNile ChainID = "3448148188"

	Ton        ChainID = "-239"
	TonTestnet ChainID = "-3"
)

type ChainType string

const (
	ChainTypeAELF ChainType = "aelf"
	ChainTypeEVM  ChainType = "evm"
	ChainTypeTron ChainType = "tron"
	ChainTypeTon  ChainType = "ton"
)

// Chain is the common description of every supported chain.
type Chain struct {
	ID           ChainID   `json:"id"`
	APIName      string    `json:"api_name"`
	Name         string    `json:"name"`
	Type         ChainType `json:"type"`
	NativeSymbol string    `json:"native_symbol"`
	Testnet      bool      `json:"testnet"`
}

type EVMChain struct {
	Chain
	NumericID     *big.Int
	WrappedNative common.Address
}

type TronChain struct {
	Chain
	WrappedNative string
}

type TonChain struct {
	Chain
	WrappedNative string
}

var aelfChains = []Chain{
	{ID: AELF, APIName: "MainChain_AELF", Name: "aelf MainChain", Type: ChainTypeAELF, NativeSymbol: "ELF"},
	{ID: TDVV, APIName: "SideChain_tDVV", Name: "aelf dAppChain", Type: ChainTypeAELF, NativeSymbol: "ELF"},
	{ID: TDVW, APIName: "SideChain_tDVW", Name: "aelf dAppChain Testnet", Type: ChainTypeAELF, NativeSymbol: "ELF", Testnet: true},
}

var evmChains = []EVMChain{
	{
		Chain:         Chain{ID: Ethereum, APIName: "Ethereum", Name: "Ethereum", Type: ChainTypeEVM, NativeSymbol: "ETH"},
		NumericID:     new(big.Int).Set(params.MainnetChainConfig.ChainID),
		WrappedNative: common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
	},
	{
		Chain:         Chain{ID: Sepolia, APIName: "Sepolia", Name: "Sepolia", Type: ChainTypeEVM, NativeSymbol: "ETH", Testnet: true},
		NumericID:     new(big.Int).Set(params.SepoliaChainConfig.ChainID),
		WrappedNative: common.HexToAddress("0xfFf9976782d46CC05630D1f6eBAb18b2324d6B14"),
	},
	{
		Chain:         Chain{ID: BSC, APIName: "BSC", Name: "BNB Smart Chain", Type: ChainTypeEVM, NativeSymbol: "BNB"},
		NumericID:     big.NewInt(56),
		WrappedNative: common.HexToAddress("0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c"),
	},
	{
		Chain:         Chain{ID: BSCTestnet, APIName: "BSCTest", Name: "BNB Smart Chain Testnet", Type: ChainTypeEVM, NativeSymbol: "BNB", Testnet: true},
		NumericID:     big.NewInt(97),
		WrappedNative: common.HexToAddress("0xae13d989daC2f0dEbFf460aC112a837C89BAa7cd"),
	},
}

var tronChains = []TronChain{
	{
		Chain:         Chain{ID: Tron, APIName: "Tron", Name: "TRON", Type: ChainTypeTron, NativeSymbol: "TRX"},
		WrappedNative: "TNUC9Qb1rRpS5CbWLmNMxXBjyFoydXjWFR",
	},
	{
		Chain: Chain{ID: TronNile, APIName: "TronNile", Name: "TRON Nile Testnet", Type: ChainTypeTron, NativeSymbol: "TRX", Testnet: true},
	},
}

var tonChains = []TonChain{
	{
		Chain: Chain{ID: Ton, APIName: "Ton", Name: "TON", Type: ChainTypeTon, NativeSymbol: "TON"},
	},
	{
		Chain: Chain{ID: TonTestnet, APIName: "TonTest", Name: "TON Testnet", Type: ChainTypeTon, NativeSymbol: "TON", Testnet: true},
	},
}
