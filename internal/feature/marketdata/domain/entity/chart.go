package entity

import (
	"fmt"
	"slices"
	"time"
)

// チャート取得で選択できる値
var (
	Regions   = []string{"US", "IN", "JP", "APAC", "EU"}
	Ranges    = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "5y"}
	Intervals = []string{"1m", "5m", "15m", "30m", "1h", "1d", "1wk", "1mo"}
)

// チャート取得のデフォルト値
const (
	DefaultRegion   = "US"
	DefaultRange    = "1d"
	DefaultInterval = "5m"
)

// ChartQuery はチャート取得のパラメータです。
type ChartQuery struct {
	Symbol   string
	Region   string
	Range    string
	Interval string
}

// WithDefaults は空のフィールドをデフォルト値で埋めたコピーを返します。
func (q ChartQuery) WithDefaults() ChartQuery {
	if q.Region == "" {
		q.Region = DefaultRegion
	}
	if q.Range == "" {
		q.Range = DefaultRange
	}
	if q.Interval == "" {
		q.Interval = DefaultInterval
	}
	return q
}

// Validate はシンボルの有無と各選択値が許可された値かを検証します。
func (q ChartQuery) Validate() error {
	if q.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if !slices.Contains(Regions, q.Region) {
		return fmt.Errorf("unsupported region %q", q.Region)
	}
	if !slices.Contains(Ranges, q.Range) {
		return fmt.Errorf("unsupported range %q", q.Range)
	}
	if !slices.Contains(Intervals, q.Interval) {
		return fmt.Errorf("unsupported interval %q", q.Interval)
	}
	return nil
}

// ChartData はチャートAPIの先頭結果から取り出したタイムスタンプ（エポック秒）と終値の並列配列です。
// 終値は欠損（null）があり得るため nil を許容します。
type ChartData struct {
	Timestamps []int64    `json:"timestamp"`
	Closes     []*float64 `json:"close"`
}

// ChartPoint は描画用の1点です。
type ChartPoint struct {
	Time  time.Time `json:"time"`
	Close *float64  `json:"close"`
}

// Series はタイムスタンプごとに1点を生成します。終値が不足する位置は nil になります。
func (d ChartData) Series() []ChartPoint {
	points := make([]ChartPoint, len(d.Timestamps))
	for i, ts := range d.Timestamps {
		points[i].Time = time.Unix(ts, 0).UTC()
		if i < len(d.Closes) {
			points[i].Close = d.Closes[i]
		}
	}
	return points
}
