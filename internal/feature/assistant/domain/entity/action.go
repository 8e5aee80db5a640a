// Package entity defines the domain models for the assistant feature.
package entity

import "encoding/json"

// ActionName is the wire name of a catalog action as the model sees it.
type ActionName string

// The five actions of the catalog.
const (
	ActionNews    ActionName = "get_stock_news"
	ActionQuote   ActionName = "get_stock_data"
	ActionProfile ActionName = "get_stock_profile"
	ActionChart   ActionName = "get_stock_chart"
	ActionAnalyst ActionName = "get_analyst_data"
)

// ActionSpec describes one callable action: name, description and the JSON schema of its arguments.
type ActionSpec struct {
	Name        ActionName
	Description string
	Parameters  map[string]any
}

// Decision is what the classifier chose for one question.
// An empty Action means the model did not pick any action.
type Decision struct {
	Action    ActionName
	Arguments json.RawMessage
}

// Call is a decoded, typed action invocation. Each action has its own argument struct.
type Call interface {
	Name() ActionName
}

// NewsArgs are the arguments of get_stock_news.
type NewsArgs struct {
	StockName string `json:"stock_name" jsonschema_description:"Name of the stock"`
}

// QuoteArgs are the arguments of get_stock_data.
type QuoteArgs struct {
	StockName string `json:"stock_name" jsonschema_description:"Name of the stock"`
}

// ProfileArgs are the arguments of get_stock_profile.
type ProfileArgs struct {
	StockName string `json:"stock_name"`
}

// ChartArgs are the arguments of get_stock_chart.
type ChartArgs struct {
	StockName string `json:"stock_name"`
	Region    string `json:"region" jsonschema:"enum=US,enum=IN,enum=JP,enum=APAC,enum=EU"`
	Range     string `json:"range" jsonschema:"enum=1d,enum=5d,enum=1mo,enum=3mo,enum=6mo,enum=1y,enum=5y"`
	Interval  string `json:"interval" jsonschema:"enum=1m,enum=5m,enum=15m,enum=30m,enum=1h,enum=1d,enum=1wk,enum=1mo"`
}

// AnalystArgs are the arguments of get_analyst_data.
type AnalystArgs struct {
	Symbol string `json:"symbol"`
}

func (NewsArgs) Name() ActionName    { return ActionNews }
func (QuoteArgs) Name() ActionName   { return ActionQuote }
func (ProfileArgs) Name() ActionName { return ActionProfile }
func (ChartArgs) Name() ActionName   { return ActionChart }
func (AnalystArgs) Name() ActionName { return ActionAnalyst }
