package entity

// アナリストレポートで欠損したフィールドの代替文字列
const (
	NoReportTitle   = "No title available"
	UnknownAuthor   = "Unknown author"
	NoPDFURL        = "No URL available"
	NoReportType    = "No type available"
	NoAbstract      = "No abstract available"
	UnknownProvider = "Unknown provider"
)

// AnalystReport はアナリストレポート1件を6フィールドに射影したものです。
// 値は上流の型のまま保持します。
type AnalystReport struct {
	ReportTitle any `json:"report_title"`
	Author      any `json:"author"`
	PDFURL      any `json:"pdf_url"`
	ReportType  any `json:"report_type"`
	Abstract    any `json:"abstract"`
	Provider    any `json:"provider"`
}
