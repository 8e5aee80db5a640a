// Package dto defines data transfer objects for the symbols HTTP API.
package dto

// SymbolItem represents a directory entry in the API response.
type SymbolItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ResolveResponse is returned by the resolve endpoint.
type ResolveResponse struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
}
