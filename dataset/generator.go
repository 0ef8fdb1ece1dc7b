package dataset

import (
	"math/rand"

	"github.com/housight/housight/pkg/errors"
)

// ValueFloor is the minimum median house value; the generated target is
// clamped here after noise is added.
const ValueFloor = 15000.0

// Field ranges for the synthetic draw. Geographic bounds follow the
// California bounding box; the count fields are drawn as whole numbers.
const (
	longitudeMin = -124.35
	longitudeMax = -114.31
	latitudeMin  = 32.54
	latitudeMax  = 41.95

	ageMin = 1
	ageMax = 52

	totalRoomsMin = 500
	totalRoomsMax = 8000

	totalBedroomsMin = 100
	totalBedroomsMax = 1600

	populationMin = 300
	populationMax = 5000

	householdsMin = 100
	householdsMax = 1500

	incomeMin = 0.5
	incomeMax = 15.0
)

// proximityWeights are the draw probabilities for the categories, in
// Proximities() order. They sum to 1.
var proximityWeights = []float64{0.45, 0.30, 0.12, 0.10, 0.03}

// proximityBonus is the deterministic contribution of each category to the
// target value.
var proximityBonus = map[Proximity]float64{
	NearOceanHour: 10000,
	Inland:        -20000,
	NearOcean:     20000,
	NearBay:       15000,
	Island:        50000,
}

// Target value coefficients: a linear combination of income, age, latitude
// and the proximity bonus, plus Gaussian noise.
const (
	valueBase        = 50000.0
	valueIncomeCoef  = 40000.0
	valueAgeCoef     = 150.0
	valueLatCoef     = -1200.0
	valueNoiseStddev = 15000.0
)

// Generator produces synthetic housing tables. All randomness flows through
// the generator's own seeded source, so equal seeds give equal tables.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate draws count records.
func (g *Generator) Generate(count int) (*Table, error) {
	if count <= 0 {
		return nil, errors.NewValidationError("count", "must be positive", count)
	}

	records := make([]Record, count)
	for i := range records {
		records[i] = g.drawRecord()
	}
	return NewTable(records), nil
}

func (g *Generator) drawRecord() Record {
	r := Record{
		Longitude:        g.uniform(longitudeMin, longitudeMax),
		Latitude:         g.uniform(latitudeMin, latitudeMax),
		HousingMedianAge: float64(g.intBetween(ageMin, ageMax)),
		TotalRooms:       float64(g.intBetween(totalRoomsMin, totalRoomsMax)),
		TotalBedrooms:    float64(g.intBetween(totalBedroomsMin, totalBedroomsMax)),
		Population:       float64(g.intBetween(populationMin, populationMax)),
		Households:       float64(g.intBetween(householdsMin, householdsMax)),
		MedianIncome:     g.uniform(incomeMin, incomeMax),
		OceanProximity:   g.drawProximity(),
	}
	r.MedianHouseValue = g.drawValue(&r)
	return r
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// intBetween draws an integer in [lo, hi].
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) drawProximity() Proximity {
	u := g.rng.Float64()
	cum := 0.0
	ps := Proximities()
	for i, p := range ps {
		cum += proximityWeights[i]
		if u < cum {
			return p
		}
	}
	// Float rounding can leave u just above the final cumulative sum.
	return ps[len(ps)-1]
}

func (g *Generator) drawValue(r *Record) float64 {
	v := valueBase +
		valueIncomeCoef*r.MedianIncome +
		valueAgeCoef*r.HousingMedianAge +
		valueLatCoef*(r.Latitude-latitudeMin) +
		proximityBonus[r.OceanProximity] +
		g.rng.NormFloat64()*valueNoiseStddev
	if v < ValueFloor {
		return ValueFloor
	}
	return v
}
