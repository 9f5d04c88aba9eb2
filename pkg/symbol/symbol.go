package symbol

import (
	"fmt"
	"strings"
)

// FormatMap maps a raw token symbol to the symbol shown to users.
// Lookups are exact: no case folding, no trimming.
type FormatMap map[string]string

// NativeTokenList holds wrapped-native token symbols such as WETH.
type NativeTokenList []string

var defaultFormatMap = FormatMap{
	"SGR-1": "SGR",
}

var defaultNativeTokens = NativeTokenList{"WETH", "WBNB", "WTRX", "WTON"}

// Formatter resolves display symbols. It is read-only after construction and
// can be shared between goroutines.
type Formatter struct {
	formatMap    FormatMap
	nativeTokens map[string]struct{}
}

// NewFormatter copies both tables so later changes by the caller are not observed.
func NewFormatter(formatMap FormatMap, nativeTokens NativeTokenList) *Formatter {
	f := &Formatter{
		formatMap:    make(FormatMap, len(formatMap)),
		nativeTokens: make(map[string]struct{}, len(nativeTokens)),
	}
	for raw, canonical := range formatMap {
		f.formatMap[raw] = canonical
	}
	for _, s := range nativeTokens {
		f.nativeTokens[s] = struct{}{}
	}
	return f
}

// DefaultFormatter returns a Formatter over the built-in tables.
func DefaultFormatter() *Formatter {
	return NewFormatter(defaultFormatMap, defaultNativeTokens)
}

// DefaultFormatMap returns a copy of the built-in symbol table.
func DefaultFormatMap() FormatMap {
	return defaultFormatMap.Merge(nil)
}

// DefaultNativeTokens returns a copy of the built-in wrapped-native list.
func DefaultNativeTokens() NativeTokenList {
	return append(NativeTokenList(nil), defaultNativeTokens...)
}

// FormatSymbol returns the mapped symbol, or symbol itself when there is no mapping.
func (f *Formatter) FormatSymbol(symbol string) string {
	if canonical, ok := f.formatMap[symbol]; ok {
		return canonical
	}
	return symbol
}

// FormatSymbolAndNativeToken behaves like FormatSymbol, and additionally
// unwraps wrapped-native tokens (WETH -> ETH). Map entries win over unwrapping.
func (f *Formatter) FormatSymbolAndNativeToken(symbol string) string {
	if canonical, ok := f.formatMap[symbol]; ok {
		return canonical
	}
	if _, ok := f.nativeTokens[symbol]; ok && symbol != "" {
		// Only a single-character wrap prefix is recognised.
		return symbol[1:]
	}
	return symbol
}

// IsWrappedNative reports whether symbol is in the wrapped-native list.
func (f *Formatter) IsWrappedNative(symbol string) bool {
	_, ok := f.nativeTokens[symbol]
	return ok
}

// Merge returns a new map holding m with overrides applied on top.
func (m FormatMap) Merge(overrides FormatMap) FormatMap {
	merged := make(FormatMap, len(m)+len(overrides))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// ParseFormatMap parses overrides written as "RAW:CANON,RAW2:CANON2".
// An empty string yields an empty map.
func ParseFormatMap(spec string) (FormatMap, error) {
	result := FormatMap{}
	if strings.TrimSpace(spec) == "" {
		return result, nil
	}
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		raw, canonical, ok := strings.Cut(entry, ":")
		raw = strings.TrimSpace(raw)
		canonical = strings.TrimSpace(canonical)
		if !ok || raw == "" || canonical == "" {
			return nil, fmt.Errorf("invalid symbol mapping %q, expected RAW:CANON", entry)
		}
		if _, dup := result[raw]; dup {
			return nil, fmt.Errorf("duplicate symbol mapping for %q", raw)
		}
		result[raw] = canonical
	}
	return result, nil
}
