package recommend

import (
	"sync"
	"testing"

	"github.com/akozadaev/go_neighborhood_recommender/internal/dataset"
	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
	"github.com/akozadaev/go_neighborhood_recommender/internal/zones"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testZones = zones.NewClassifier(map[string]models.Zone{
	"T. Nagar":   models.ZoneCentral,
	"Egmore":     models.ZoneCentral,
	"Mylapore":   models.ZoneCentral,
	"Kilpauk":    models.ZoneCentral,
	"Adyar":      models.ZoneSouth,
	"Velachery":  models.ZoneSouth,
	"Ennore":     models.ZoneNorth,
	"Raj Bhavan": models.ZoneInstitutional,
})

var defaultPrefs = [3]models.Attribute{models.HospitalScore, models.ConnectivityScore, models.MallScore}

func plots(n int) *int { return &n }

// uniform возвращает район, у которого все исходные оценки равны v.
func uniform(location string, v float64) models.Neighborhood {
	return models.Neighborhood{
		Location:          location,
		FloodScore:        v,
		HospitalScore:     v,
		CollegeScore:      v,
		FactoryScore:      v,
		CrimeScore:        v,
		ConnectivityScore: v,
		MallScore:         v,
		PowerScore:        v,
		ServicesScore:     v,
		CostScore:         v,
	}
}

func newTestEngine(records ...models.Neighborhood) *Engine {
	return NewEngine(dataset.NewStore(records), testZones)
}

func locations(items []models.ScoredNeighborhood) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Location
	}
	return out
}

func TestWeights(t *testing.T) {
	w := Weights([3]models.Attribute{models.SafetyScore, models.CostScore, models.FloodScore})

	require.Len(t, w, len(models.Attributes))
	assert.Equal(t, 0.7, w[models.SafetyScore])
	assert.Equal(t, 0.6, w[models.CostScore])
	assert.Equal(t, 0.5, w[models.FloodScore])
	for _, a := range models.Attributes {
		if a == models.SafetyScore || a == models.CostScore || a == models.FloodScore {
			continue
		}
		assert.Equalf(t, DefaultWeight, w[a], "attribute %s", a)
	}
}

func TestWeightsDuplicatePreferenceLastSlotWins(t *testing.T) {
	w := Weights([3]models.Attribute{models.MallScore, models.PowerScore, models.MallScore})

	assert.Equal(t, 0.5, w[models.MallScore])
	assert.Equal(t, 0.6, w[models.PowerScore])
}

func TestRecommendNotLoaded(t *testing.T) {
	e := NewEngine(notLoaded{}, testZones)

	res, err := e.Recommend(Query{SelectedArea: "Adyar", Preferences: defaultPrefs})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, dataset.ErrNotLoaded)
}

type notLoaded struct{}

func (notLoaded) Records() ([]models.Neighborhood, error) { return nil, dataset.ErrNotLoaded }

func TestRecommendFinalScore(t *testing.T) {
	// Все исходные оценки 0: Residential = Safety = 10, остальные слагаемые нулевые.
	e := newTestEngine(uniform("Ennore", 0))

	res, err := e.Recommend(Query{SelectedArea: "Ennore", Preferences: defaultPrefs})
	require.NoError(t, err)
	require.Len(t, res.Top3, 1)

	got := res.Top3[0]
	assert.Equal(t, 10.0, got.ResidentialScore)
	assert.Equal(t, 10.0, got.SafetyScore)
	assert.InDelta(t, 8.0, got.FinalScore, 1e-9)

	res, err = e.Recommend(Query{
		SelectedArea: "Ennore",
		Preferences:  [3]models.Attribute{models.SafetyScore, models.ResidentialScore, models.FloodScore},
	})
	require.NoError(t, err)
	assert.InDelta(t, 13.0, res.Top3[0].FinalScore, 1e-9)
}

func TestRecommendPlotsBonusUsesSharedMean(t *testing.T) {
	a := uniform("Adyar", 5)
	a.AvailablePlots = plots(10)
	b := uniform("Velachery", 5)
	b.AvailablePlots = plots(0)
	c := uniform("Ennore", 5) // другая зона, в среднее не входит
	c.AvailablePlots = plots(1000)

	res, err := newTestEngine(a, b, c).Recommend(Query{SelectedArea: "Adyar", Preferences: defaultPrefs})
	require.NoError(t, err)
	require.Equal(t, 2, res.TotalFilteredAreas)

	base := res.Top3[0].FinalScore - 0.5
	assert.Equal(t, "Adyar", res.Top3[0].Location)
	assert.InDelta(t, base-0.5, res.Top3[1].FinalScore, 1e-9)
}

func TestRecommendAbsentPlotsCountAsZeroInMean(t *testing.T) {
	a := uniform("Adyar", 5)
	a.AvailablePlots = plots(6)
	b := uniform("Velachery", 5) // без значения: бонуса нет, но входит в среднее как 0

	res, err := newTestEngine(a, b).Recommend(Query{SelectedArea: "Adyar", Preferences: defaultPrefs})
	require.NoError(t, err)
	require.Len(t, res.Top3, 2)

	// среднее = 3, бонус Adyar = 0.1 * (6 - 3)
	assert.InDelta(t, 0.3, res.Top3[0].FinalScore-res.Top3[1].FinalScore, 1e-9)
}

func TestRecommendSelectedAreaAlreadyOnTop(t *testing.T) {
	tn := uniform("T. Nagar", 7)
	tn.CostScore = 6
	tn.CrimeScore = 3
	tn.FactoryScore = 2

	e := newTestEngine(
		tn,
		uniform("Egmore", 3),
		uniform("Mylapore", 2),
		uniform("Adyar", 9),
	)

	res, err := e.Recommend(Query{SelectedArea: "T. Nagar", Preferences: defaultPrefs})
	require.NoError(t, err)

	require.NotNil(t, res.Zone)
	assert.Equal(t, models.ZoneCentral, *res.Zone)
	assert.LessOrEqual(t, len(res.Top3), 3)
	assert.Equal(t, []string{"T. Nagar", "Egmore", "Mylapore"}, locations(res.Top3))
	for _, it := range res.Top3 {
		require.NotNil(t, it.Zone)
		assert.Equal(t, models.ZoneCentral, *it.Zone)
	}
	assert.True(t, res.SelectedAreaInTop3)
	require.NotNil(t, res.SelectedAreaData)
	assert.Equal(t, "T. Nagar", res.SelectedAreaData.Location)
	assert.False(t, res.Forced)
	assert.Equal(t, 3, res.TotalFilteredAreas)
}

func TestRecommendForcesSelectedAreaIntoThirdSlot(t *testing.T) {
	e := newTestEngine(
		uniform("T. Nagar", 1),
		uniform("Egmore", 9),
		uniform("Mylapore", 8),
		uniform("Kilpauk", 7),
	)

	res, err := e.Recommend(Query{SelectedArea: "T. Nagar", Preferences: defaultPrefs})
	require.NoError(t, err)

	assert.Equal(t, []string{"Egmore", "Mylapore", "T. Nagar"}, locations(res.Top3))
	assert.True(t, res.SelectedAreaInTop3)
	assert.True(t, res.Forced)
	assert.Equal(t, 4, res.TotalFilteredAreas)
}

func TestRecommendForcedAreaKeepsTop3Sorted(t *testing.T) {
	// Kilpauk обгоняет T. Nagar только за счёт участков и теряет третье место.
	tn := uniform("T. Nagar", 5)
	eg := uniform("Egmore", 9)
	my := uniform("Mylapore", 5)
	my.AvailablePlots = plots(40)
	kp := uniform("Kilpauk", 5)
	kp.AvailablePlots = plots(20)

	res, err := newTestEngine(tn, eg, my, kp).Recommend(Query{SelectedArea: "T. Nagar", Preferences: defaultPrefs})
	require.NoError(t, err)

	assert.Equal(t, []string{"Egmore", "Mylapore", "T. Nagar"}, locations(res.Top3))
	for i := 1; i < len(res.Top3); i++ {
		assert.GreaterOrEqual(t, res.Top3[i-1].FinalScore, res.Top3[i].FinalScore)
	}
}

func TestRecommendBudgetAboveEveryCostScore(t *testing.T) {
	e := newTestEngine(uniform("T. Nagar", 6), uniform("Egmore", 9), uniform("Adyar", 5))

	res, err := e.Recommend(Query{SelectedArea: "T. Nagar", Budget: 100, Preferences: defaultPrefs})
	require.NoError(t, err)

	assert.Equal(t, 0, res.TotalFilteredAreas)
	assert.Empty(t, res.Top3)
	assert.NotNil(t, res.Top3)
	assert.Nil(t, res.SelectedAreaData)
	assert.False(t, res.SelectedAreaInTop3)
}

func TestRecommendBudgetComparesCostScore(t *testing.T) {
	cheap := uniform("Egmore", 5)
	cheap.CostScore = 3
	pricey := uniform("Mylapore", 5)
	pricey.CostScore = 8
	exact := uniform("Kilpauk", 5)
	exact.CostScore = 6

	res, err := newTestEngine(cheap, pricey, exact).Recommend(Query{SelectedArea: "Egmore", Budget: 6, Preferences: defaultPrefs})
	require.NoError(t, err)

	assert.Equal(t, 2, res.TotalFilteredAreas)
	assert.ElementsMatch(t, []string{"Mylapore", "Kilpauk"}, locations(res.Top3))
	assert.Nil(t, res.SelectedAreaData, "selected area filtered out by budget")
	assert.False(t, res.SelectedAreaInTop3)
}

func TestRecommendZeroBudgetKeepsZoneFilteredCount(t *testing.T) {
	e := newTestEngine(
		uniform("T. Nagar", 0),
		uniform("Egmore", 1),
		uniform("Adyar", 2),
		uniform("Ennore", 3),
	)

	res, err := e.Recommend(Query{SelectedArea: "Egmore", Preferences: defaultPrefs})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalFilteredAreas)
}

func TestRecommendUnknownAreaSkipsZoneFilter(t *testing.T) {
	e := newTestEngine(
		uniform("T. Nagar", 4),
		uniform("Adyar", 6),
		uniform("Ennore", 5),
		uniform("Nowhere Town", 9), // нет в таблице зон
	)

	res, err := e.Recommend(Query{SelectedArea: "Atlantis", Preferences: defaultPrefs})
	require.NoError(t, err)

	assert.Nil(t, res.Zone)
	assert.Equal(t, 4, res.TotalFilteredAreas)
	assert.Nil(t, res.SelectedAreaData)
	assert.False(t, res.SelectedAreaInTop3)
	assert.Equal(t, []string{"Nowhere Town", "Adyar", "Ennore"}, locations(res.Top3))
	assert.Nil(t, res.Top3[0].Zone)
}

func TestRecommendSelectedAreaMatchedCaseInsensitively(t *testing.T) {
	e := newTestEngine(
		uniform("T. Nagar", 1),
		uniform("Egmore", 9),
		uniform("Adyar", 8),
		uniform("Ennore", 7),
	)

	// Таблица зон чувствительна к регистру, поэтому фильтр по зоне не применяется.
	res, err := e.Recommend(Query{SelectedArea: "t. nagar", Preferences: defaultPrefs})
	require.NoError(t, err)

	assert.Nil(t, res.Zone)
	require.NotNil(t, res.SelectedAreaData)
	assert.Equal(t, "T. Nagar", res.SelectedAreaData.Location)
	assert.True(t, res.SelectedAreaInTop3)
	assert.Equal(t, []string{"Egmore", "Adyar", "T. Nagar"}, locations(res.Top3))
}

func TestRecommendTiesKeepInputOrder(t *testing.T) {
	e := newTestEngine(
		uniform("Egmore", 5),
		uniform("Mylapore", 5),
		uniform("Kilpauk", 5),
		uniform("T. Nagar", 5),
	)

	res, err := e.Recommend(Query{SelectedArea: "Egmore", Preferences: defaultPrefs})
	require.NoError(t, err)
	assert.Equal(t, []string{"Egmore", "Mylapore", "Kilpauk"}, locations(res.Top3))
}

func TestRecommendIsDeterministic(t *testing.T) {
	e := newTestEngine(
		uniform("T. Nagar", 1),
		uniform("Egmore", 9),
		uniform("Mylapore", 8),
		uniform("Kilpauk", 7),
	)
	q := Query{SelectedArea: "T. Nagar", Preferences: defaultPrefs}

	first, err := e.Recommend(q)
	require.NoError(t, err)
	second, err := e.Recommend(q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecommendDoesNotMutateDataset(t *testing.T) {
	records := []models.Neighborhood{uniform("Egmore", 2), uniform("Mylapore", 8)}
	e := newTestEngine(records...)

	_, err := e.Recommend(Query{SelectedArea: "Egmore", Preferences: defaultPrefs})
	require.NoError(t, err)

	assert.Equal(t, "Egmore", records[0].Location)
	assert.Equal(t, "Mylapore", records[1].Location)
}

func TestRecommendConcurrentQueries(t *testing.T) {
	e := newTestEngine(
		uniform("T. Nagar", 1),
		uniform("Egmore", 9),
		uniform("Adyar", 8),
		uniform("Velachery", 7),
	)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			area := "T. Nagar"
			if i%2 == 0 {
				area = "Adyar"
			}
			res, err := e.Recommend(Query{SelectedArea: area, Preferences: defaultPrefs})
			assert.NoError(t, err)
			assert.True(t, res.SelectedAreaInTop3)
		}(i)
	}
	wg.Wait()
}

func TestRecommendGuaranteeInvariant(t *testing.T) {
	records := []models.Neighborhood{
		uniform("T. Nagar", 2),
		uniform("Egmore", 9),
		uniform("Mylapore", 3),
		uniform("Kilpauk", 7),
		uniform("Adyar", 1),
		uniform("Velachery", 6),
		uniform("Ennore", 4),
	}
	e := newTestEngine(records...)

	for _, r := range records {
		for _, budget := range []float64{0, 2, 5, 100} {
			res, err := e.Recommend(Query{SelectedArea: r.Location, Budget: budget, Preferences: defaultPrefs})
			require.NoError(t, err)
			assert.LessOrEqual(t, len(res.Top3), 3)
			if res.SelectedAreaData != nil {
				assert.Truef(t, res.SelectedAreaInTop3, "area %s budget %v", r.Location, budget)
				assert.Contains(t, locations(res.Top3), r.Location)
			}
			if res.Zone != nil {
				for _, it := range res.Top3 {
					require.NotNil(t, it.Zone)
					assert.Equal(t, *res.Zone, *it.Zone)
				}
			}
		}
	}
}
