package handlers

import (
	"net/http"
	"strings"

	"github.com/bridgescan/bridgenode/pkg/symbol"
)

type SymbolResponse struct {
	Symbol        string `json:"symbol"`
	Display       string `json:"display"`
	NativeDisplay string `json:"native_display"`
	WrappedNative bool   `json:"wrapped_native"`
}

func SymbolGetHandler(r *http.Request, formatter *symbol.Formatter) (SymbolResponse, error) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 4 || parts[3] == "" {
		return SymbolResponse{}, &BadRequestError{Message: "symbol is required"}
	}
	sym := parts[3]
	return SymbolResponse{
		Symbol:        sym,
		Display:       formatter.FormatSymbol(sym),
		NativeDisplay: formatter.FormatSymbolAndNativeToken(sym),
		WrappedNative: formatter.IsWrappedNative(sym),
	}, nil
}
