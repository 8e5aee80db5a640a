package rapidapi

import "tickertalk/internal/feature/marketdata/domain/entity"

func projectNews(items []map[string]any) []entity.NewsItem {
	out := make([]entity.NewsItem, 0, len(items))
	for _, item := range items {
		out = append(out, entity.NewsItem{
			Description: field(item, "description", entity.NoDescription),
			Title:       field(item, "title", entity.NoTitle),
			PubDate:     field(item, "pubDate", entity.NoPubDate),
		})
	}
	return out
}

func projectAnalyst(hits []map[string]any) []entity.AnalystReport {
	out := make([]entity.AnalystReport, 0, len(hits))
	for _, hit := range hits {
		out = append(out, entity.AnalystReport{
			ReportTitle: field(hit, "report_title", entity.NoReportTitle),
			Author:      field(hit, "author", entity.UnknownAuthor),
			PDFURL:      field(hit, "pdf_url", entity.NoPDFURL),
			ReportType:  field(hit, "report_type", entity.NoReportType),
			Abstract:    field(hit, "abstract", entity.NoAbstract),
			Provider:    field(hit, "provider", entity.UnknownProvider),
		})
	}
	return out
}

// field は key の値を上流の型のまま返します。キーが無いか null の場合は placeholder を返します。
func field(item map[string]any, key, placeholder string) any {
	v, ok := item[key]
	if !ok || v == nil {
		return placeholder
	}
	return v
}
