package entity

// ニュース項目で欠損したフィールドの代替文字列
const (
	NoDescription = "No description available"
	NoTitle       = "No title available"
	NoPubDate     = "No publication date available"
)

// NewsItem はニュース1件を3フィールドに射影したものです。
// 値は上流の型のまま保持します (pubDate が数値で返る銘柄もある)。
type NewsItem struct {
	Description any `json:"description"`
	Title       any `json:"title"`
	PubDate     any `json:"pubDate"`
}
