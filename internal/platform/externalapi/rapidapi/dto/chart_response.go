// Package dto は RapidAPI レスポンスのデコード用構造体を定義します。
package dto

// ChartResponse は get-chart エンドポイントのレスポンスのうち利用する部分です。
type ChartResponse struct {
	Chart *struct {
		Result []ChartResult `json:"result"`
	} `json:"chart"`
}

// ChartResult はチャート結果1件です。
type ChartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// AnalystResponse は get-what-analysts-are-saying エンドポイントのレスポンスです。
// hits の各要素は欠損フィールドを検出するため生のまま保持します。
type AnalystResponse struct {
	Result []struct {
		Hits []map[string]any `json:"hits"`
	} `json:"result"`
}
