package sqlbuilder

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/orris-inc/fitment/internal/shared/query"
)

// option renders "SELECT <value> AS value, <label> AS label FROM <table> ORDER BY <label>".
func (b *Builder) option(name, table, valueCol, labelCol string) (Query, error) {
	sb := b.stmt.Select(valueCol+" AS value", labelCol+" AS label").
		From(table).
		OrderBy(labelCol)
	return render(name, sb, 0)
}

func (b *Builder) Makes() (Query, error) {
	return b.option("makes", "make", "make_id", "make_name")
}

func (b *Builder) PartTypes() (Query, error) {
	return b.option("part_types", "part_type", "part_type_id", "parttype_name")
}

func (b *Builder) Positions() (Query, error) {
	return b.option("positions", "position", "position_id", "position_code")
}

func (b *Builder) Drives() (Query, error) {
	return b.option("drives", "drive_train", "drive_id", "drive_code")
}

func (b *Builder) Brands() (Query, error) {
	return b.option("brands", "brand", "brand_id", "brand_name")
}

// ModelsByMake lists the models of one make.
func (b *Builder) ModelsByMake(makeID int64) (Query, error) {
	sb := b.stmt.Select("model_id AS value", "model_name AS label").
		From("model").
		Where(sq.Eq{"make_id": makeID}).
		OrderBy("model_name")
	return render("models", sb, 0)
}

// YearsByModel lists the distinct non-null trim years of one model.
func (b *Builder) YearsByModel(modelID int64) (Query, error) {
	sb := b.stmt.Select("year").
		Distinct().
		From("trim").
		Where(sq.Eq{"model_id": modelID}).
		Where("year IS NOT NULL").
		OrderBy("year")
	return render("years", sb, 0)
}

// TrimsByModel lists the trims of one model, optionally narrowed to a year.
func (b *Builder) TrimsByModel(modelID int64, year query.Optional[int]) (Query, error) {
	sb := b.stmt.Select("trim_id AS value", "trim_name AS label").
		From("trim").
		Where(sq.Eq{"model_id": modelID})
	sb = Predicates{}.With(eq("year", year)).Apply(sb)
	sb = sb.OrderBy("trim_name")
	return render("trims", sb, 0)
}
