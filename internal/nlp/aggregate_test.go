package nlp

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veggievision/lokatani/internal/dataset"
)

func TestSummarize(t *testing.T) {
	s := Summarize("bayam", threeRecords()[:2])
	assert.Equal(t, Summary{Name: "bayam", Count: 2, Total: 800, Average: 400, Min: 300, Max: 500}, s)
	assert.Equal(t, 400.0, s.Value(StatAverage))
	assert.Equal(t, 500.0, s.Value(StatMaximum))
	assert.Equal(t, 300.0, s.Value(StatMinimum))
	assert.Equal(t, 800.0, s.Value(StatTotal))
}

func TestSummarize_EmptyComputesNothing(t *testing.T) {
	s := Summarize("bayam", nil)
	assert.True(t, s.Empty())
	assert.Zero(t, s.Average)
	assert.Zero(t, s.Min)
	assert.Zero(t, s.Max)
}

func TestAggregate_OneIsCaseInsensitive(t *testing.T) {
	records := threeRecords()
	records[1].VegetableType = "BAYAM"

	res := Aggregate(records, One("bayam"))
	assert.Equal(t, 2, res.Overall.Count)
	assert.Equal(t, 800.0, res.Overall.Total)
}

func TestAggregate_SetKeepsOrderAndMissingEntries(t *testing.T) {
	res := Aggregate(threeRecords(), Set("pakcoy", "kangkung", "bayam"))

	require.Len(t, res.Breakdown, 3)
	assert.Equal(t, "pakcoy", res.Breakdown[0].Name)
	assert.True(t, res.Breakdown[0].Empty())
	assert.Equal(t, 200.0, res.Breakdown[1].Total)
	assert.Equal(t, 800.0, res.Breakdown[2].Total)
	assert.Equal(t, 1000.0, res.Overall.Total)
	assert.Equal(t, 3, res.Overall.Count)
	assert.Equal(t, 200.0, res.Overall.Min)
}

func TestAggregate_AllGroupsByFirstAppearance(t *testing.T) {
	records := []dataset.Record{
		{VegetableType: "kangkung", Weight: 100},
		{VegetableType: "bayam", Weight: 300},
		{VegetableType: "Kangkung", Weight: 100},
		{VegetableType: "pakcoy", Weight: 300},
	}

	res := Aggregate(records, All())
	require.Len(t, res.Breakdown, 3)
	assert.Equal(t, []string{"kangkung", "bayam", "pakcoy"}, []string{
		res.Breakdown[0].Name, res.Breakdown[1].Name, res.Breakdown[2].Name,
	})
	assert.Equal(t, 3, res.DistinctTypes)
	assert.Equal(t, "kangkung", res.MostCommon.Name)
	assert.Equal(t, 2, res.MostCommon.Count)
	// bayam and pakcoy tie on 300; the first seen wins.
	assert.Equal(t, "bayam", res.Heaviest.Name)
}

func TestAggregate_CountTieGoesToFirstSeen(t *testing.T) {
	records := []dataset.Record{
		{VegetableType: "pakcoy", Weight: 10},
		{VegetableType: "bayam", Weight: 50},
	}

	res := Aggregate(records, All())
	assert.Equal(t, "pakcoy", res.MostCommon.Name)
	assert.Equal(t, "bayam", res.Heaviest.Name)
}

func TestAggregate_BreakdownSumsToOverall(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	names := []string{"bayam", "kangkung", "pakcoy"}

	var records []dataset.Record
	var direct float64
	for i := 0; i < 500; i++ {
		w := float64(rnd.Intn(100000)) / 100
		records = append(records, dataset.Record{
			ID:            i,
			VegetableType: names[rnd.Intn(len(names))],
			Weight:        w,
			Timestamp:     testNow.Add(-time.Duration(i) * time.Hour),
		})
		direct += w
	}

	for _, sel := range []Selector{All(), Set(names...)} {
		res := Aggregate(records, sel)
		var sum float64
		count := 0
		for _, s := range res.Breakdown {
			sum += s.Total
			count += s.Count
		}
		assert.InDelta(t, res.Overall.Total, sum, 1e-6, sel.Kind.String())
		assert.InDelta(t, direct, res.Overall.Total, 1e-6, sel.Kind.String())
		assert.Equal(t, len(records), count)
		assert.Equal(t, FormatGrams(direct), FormatGrams(res.Overall.Total))
	}
}

func TestAggregate_NoneSelectorIsEmpty(t *testing.T) {
	res := Aggregate(threeRecords(), Selector{})
	assert.True(t, res.Overall.Empty())
	assert.Empty(t, res.Breakdown)
}
