package engine

import "github.com/ftahirops/mtop/model"

// Info summarizes ds: row count, start date range, column list and the
// first previewRows records.
func Info(ds *model.Dataset, previewRows int) model.DatasetInfo {
	info := model.DatasetInfo{
		ID:      ds.ID,
		Source:  ds.Source,
		Total:   len(ds.Records),
		Columns: append([]string(nil), ds.Headers...),
		Stats:   ds.Stats,
	}
	f := BuildFacets(ds)
	info.FirstDate, info.LastDate = f.First, f.Last

	if previewRows < 0 {
		previewRows = 0
	}
	if previewRows > len(ds.Records) {
		previewRows = len(ds.Records)
	}
	info.Preview = append([]model.Record(nil), ds.Records[:previewRows]...)
	return info
}
