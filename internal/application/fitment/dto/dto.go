package dto

import (
	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/shared/query"
)

// SearchRequest carries the dashboard's search form. Identifiers arrive as strings where "" and
// "None" mean unset.
type SearchRequest struct {
	MakeID     string   `json:"make_id" form:"make_id" validate:"optid"`
	ModelID    string   `json:"model_id" form:"model_id" validate:"optid"`
	Year       string   `json:"year" form:"year" validate:"optyear"`
	TrimID     string   `json:"trim_id" form:"trim_id" validate:"optid"`
	PartTypeID string   `json:"part_type_id" form:"part_type_id" validate:"optid"`
	PositionID string   `json:"position_id" form:"position_id" validate:"optid"`
	DriveID    string   `json:"drive_id" form:"drive_id" validate:"optid"`
	BrandIDs   []string `json:"brand_ids" form:"brand_ids" validate:"max=200,dive,optid"`
	PriceMin   *float64 `json:"price_min" form:"price_min"`
	PriceMax   *float64 `json:"price_max" form:"price_max"`
}

// ToFilter drops every unset or invalid value.
func (r SearchRequest) ToFilter() fitment.SearchFilter {
	return fitment.SearchFilter{
		MakeID:     query.ParseID(r.MakeID),
		ModelID:    query.ParseID(r.ModelID),
		Year:       query.ParseYearString(r.Year),
		TrimID:     query.ParseID(r.TrimID),
		PartTypeID: query.ParseID(r.PartTypeID),
		PositionID: query.ParseID(r.PositionID),
		DriveID:    query.ParseID(r.DriveID),
		BrandIDs:   query.ParseIDs(r.BrandIDs),
		PriceMin:   query.PriceMinPtr(r.PriceMin),
		PriceMax:   query.PriceMaxPtr(r.PriceMax),
	}
}

// CoverageRequest carries the coverage form.
type CoverageRequest struct {
	MakeID     string `json:"make_id" form:"make_id" validate:"optid"`
	ModelID    string `json:"model_id" form:"model_id" validate:"optid"`
	Year       string `json:"year" form:"year" validate:"optyear"`
	PartTypeID string `json:"part_type_id" form:"part_type_id" validate:"optid"`
}

func (r CoverageRequest) ToFilter() fitment.CoverageFilter {
	return fitment.CoverageFilter{
		MakeID:     query.ParseID(r.MakeID),
		ModelID:    query.ParseID(r.ModelID),
		Year:       query.ParseYearString(r.Year),
		PartTypeID: query.ParseID(r.PartTypeID),
	}
}

// AliasLookupRequest carries free text pasted into the alias detector.
type AliasLookupRequest struct {
	Text string `json:"text" form:"text" validate:"max=20000"`
}

// TableDTO is the wire form of a result table. HTML carries the rendered text of message and
// error tables.
type TableDTO struct {
	Kind    string   `json:"kind" yaml:"kind"`
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
	Total   int      `json:"total" yaml:"total"`
	HTML    string   `json:"html,omitempty" yaml:"-"`
}

func ToTableDTO(t *fitment.Table) *TableDTO {
	if t == nil {
		t = fitment.NewDataTable(nil, nil)
	}
	columns := t.Columns
	if columns == nil {
		columns = []string{}
	}
	return &TableDTO{
		Kind:    string(t.Kind),
		Columns: columns,
		Rows:    t.Rows,
		Total:   t.Len(),
	}
}
