package chains

// Translator maps an indexer API chain identifier to a canonical ChainID.
type Translator interface {
	Translate(apiChainID string) ChainID
}

// TranslatorFunc adapts a plain function to Translator.
type TranslatorFunc func(apiChainID string) ChainID

func (f TranslatorFunc) Translate(apiChainID string) ChainID {
	return f(apiChainID)
}

// IdentityTranslator passes API identifiers through unchanged.
var IdentityTranslator = TranslatorFunc(func(apiChainID string) ChainID {
	return ChainID(apiChainID)
})

// Registry is an immutable lookup over the configured chains.
type Registry struct {
	ordered []Chain
	byID    map[ChainID]Chain
	byAPI   map[string]ChainID
	evm     map[ChainID]EVMChain
	tron    map[ChainID]TronChain
	ton     map[ChainID]TonChain
}

// NewRegistry builds a registry. Later entries replace earlier ones with the same ID.
func NewRegistry(aelf []Chain, evm []EVMChain, tron []TronChain, ton []TonChain) *Registry {
	r := &Registry{
		byID:  map[ChainID]Chain{},
		byAPI: map[string]ChainID{},
		evm:   map[ChainID]EVMChain{},
		tron:  map[ChainID]TronChain{},
		ton:   map[ChainID]TonChain{},
	}
	for _, c := range aelf {
		r.add(c)
	}
	for _, c := range evm {
		r.add(c.Chain)
		r.evm[c.ID] = c
	}
	for _, c := range tron {
		r.add(c.Chain)
		r.tron[c.ID] = c
	}
	for _, c := range ton {
		r.add(c.Chain)
		r.ton[c.ID] = c
	}
	return r
}

func (r *Registry) add(c Chain) {
	if _, exists := r.byID[c.ID]; !exists {
		r.ordered = append(r.ordered, c)
	} else {
		for i := range r.ordered {
			if r.ordered[i].ID == c.ID {
				r.ordered[i] = c
			}
		}
	}
	r.byID[c.ID] = c
	if c.APIName != "" {
		r.byAPI[c.APIName] = c.ID
	}
}

// DefaultRegistry returns the built-in aelf, EVM, TRON and TON chains.
func DefaultRegistry() *Registry {
	return NewRegistry(aelfChains, evmChains, tronChains, tonChains)
}

// Translate resolves an API chain name. Canonical IDs map to themselves and
// unknown identifiers are passed through unchanged.
func (r *Registry) Translate(apiChainID string) ChainID {
	if id, ok := r.byAPI[apiChainID]; ok {
		return id
	}
	return ChainID(apiChainID)
}

func (r *Registry) Chain(id ChainID) (Chain, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Chains returns all chains in registration order.
func (r *Registry) Chains() []Chain {
	out := make([]Chain, len(r.ordered))
	copy(out, r.ordered)
	return out
}

func (r *Registry) EVM(id ChainID) (EVMChain, bool) {
	c, ok := r.evm[id]
	return c, ok
}

func (r *Registry) Tron(id ChainID) (TronChain, bool) {
	c, ok := r.tron[id]
	return c, ok
}

func (r *Registry) Ton(id ChainID) (TonChain, bool) {
	c, ok := r.ton[id]
	return c, ok
}
