package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/housight/housight/pkg/errors"
)

// Numeric column names, in table order. The target is the last base column;
// the derived columns exist only after feature engineering.
const (
	ColLongitude        = "longitude"
	ColLatitude         = "latitude"
	ColHousingMedianAge = "housing_median_age"
	ColTotalRooms       = "total_rooms"
	ColTotalBedrooms    = "total_bedrooms"
	ColPopulation       = "population"
	ColHouseholds       = "households"
	ColMedianIncome     = "median_income"
	ColMedianHouseValue = "median_house_value"

	ColRoomsPerHousehold      = "rooms_per_household"
	ColBedroomsPerRoom        = "bedrooms_per_room"
	ColPopulationPerHousehold = "population_per_household"
)

func baseColumns() []string {
	return []string{
		ColLongitude, ColLatitude, ColHousingMedianAge,
		ColTotalRooms, ColTotalBedrooms, ColPopulation, ColHouseholds,
		ColMedianIncome, ColMedianHouseValue,
	}
}

func derivedColumns() []string {
	return []string{ColRoomsPerHousehold, ColBedroomsPerRoom, ColPopulationPerHousehold}
}

// Table is an ordered collection of records with a uniform numeric schema.
// The proximity class is carried per record as a categorical label and is
// not counted among the numeric columns.
type Table struct {
	records    []Record
	engineered bool
}

// NewTable wraps records in a Table. The records are not copied.
func NewTable(records []Record) *Table {
	return &Table{records: records}
}

// NumRows returns the number of records.
func (t *Table) NumRows() int {
	return len(t.records)
}

// NumColumns returns the number of numeric columns: 9 at generation time,
// 12 after feature engineering.
func (t *Table) NumColumns() int {
	return len(t.Columns())
}

// Columns returns the numeric column names in table order.
func (t *Table) Columns() []string {
	cols := baseColumns()
	if t.engineered {
		cols = append(cols, derivedColumns()...)
	}
	return cols
}

// Engineered reports whether the derived ratio columns are present.
func (t *Table) Engineered() bool {
	return t.engineered
}

// Records returns the backing record slice.
func (t *Table) Records() []Record {
	return t.records
}

// Record returns the i-th record.
func (t *Table) Record(i int) Record {
	return t.records[i]
}

func columnValue(r *Record, name string) (float64, bool) {
	switch name {
	case ColLongitude:
		return r.Longitude, true
	case ColLatitude:
		return r.Latitude, true
	case ColHousingMedianAge:
		return r.HousingMedianAge, true
	case ColTotalRooms:
		return r.TotalRooms, true
	case ColTotalBedrooms:
		return r.TotalBedrooms, true
	case ColPopulation:
		return r.Population, true
	case ColHouseholds:
		return r.Households, true
	case ColMedianIncome:
		return r.MedianIncome, true
	case ColMedianHouseValue:
		return r.MedianHouseValue, true
	case ColRoomsPerHousehold:
		return r.RoomsPerHousehold, true
	case ColBedroomsPerRoom:
		return r.BedroomsPerRoom, true
	case ColPopulationPerHousehold:
		return r.PopulationPerHousehold, true
	}
	return 0, false
}

// Column returns the values of a numeric column in row order.
func (t *Table) Column(name string) ([]float64, error) {
	if _, ok := columnValue(&Record{}, name); !ok {
		return nil, errors.NewValueError("Table.Column", "unknown column "+name)
	}
	if name == ColRoomsPerHousehold || name == ColBedroomsPerRoom || name == ColPopulationPerHousehold {
		if !t.engineered {
			return nil, errors.NewValueError("Table.Column", "derived column "+name+" requested before feature engineering")
		}
	}
	vals := make([]float64, len(t.records))
	for i := range t.records {
		vals[i], _ = columnValue(&t.records[i], name)
	}
	return vals, nil
}

// NumericMatrix returns all numeric columns (target included) as a dense
// matrix, one row per record, columns in Columns() order.
func (t *Table) NumericMatrix() (*mat.Dense, error) {
	if len(t.records) == 0 {
		return nil, errors.NewModelError("Table.NumericMatrix", "empty table", errors.ErrEmptyData)
	}
	cols := t.Columns()
	m := mat.NewDense(len(t.records), len(cols), nil)
	for i := range t.records {
		for j, name := range cols {
			v, _ := columnValue(&t.records[i], name)
			m.Set(i, j, v)
		}
	}
	return m, nil
}

// FeatureColumns returns the numeric feature column names: every numeric
// column except the target.
func (t *Table) FeatureColumns() []string {
	cols := t.Columns()
	features := make([]string, 0, len(cols)-1)
	for _, name := range cols {
		if name != ColMedianHouseValue {
			features = append(features, name)
		}
	}
	return features
}

// FeatureMatrix returns the numeric feature columns (target excluded) as a
// dense matrix in FeatureColumns() order.
func (t *Table) FeatureMatrix() (*mat.Dense, error) {
	if len(t.records) == 0 {
		return nil, errors.NewModelError("Table.FeatureMatrix", "empty table", errors.ErrEmptyData)
	}
	cols := t.FeatureColumns()
	m := mat.NewDense(len(t.records), len(cols), nil)
	for i := range t.records {
		for j, name := range cols {
			v, _ := columnValue(&t.records[i], name)
			m.Set(i, j, v)
		}
	}
	return m, nil
}

// TargetVector returns the median house values in row order.
func (t *Table) TargetVector() (*mat.VecDense, error) {
	if len(t.records) == 0 {
		return nil, errors.NewModelError("Table.TargetVector", "empty table", errors.ErrEmptyData)
	}
	y := mat.NewVecDense(len(t.records), nil)
	for i := range t.records {
		y.SetVec(i, t.records[i].MedianHouseValue)
	}
	return y, nil
}

// ProximityValues returns the categorical labels in row order.
func (t *Table) ProximityValues() []string {
	vals := make([]string, len(t.records))
	for i := range t.records {
		vals[i] = string(t.records[i].OceanProximity)
	}
	return vals
}
