// Package recommend реализует подбор сопоставимых районов по предпочтениям пользователя.
//
// Алгоритм: производные оценки, фильтр по бюджету, фильтр по зоне выбранного района,
// взвешенная сумма параметров с поправкой на свободные участки, сортировка и
// выбор тройки лучших с гарантированным показом выбранного района.
package recommend

import (
	"sort"
	"strings"

	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
)

// Веса параметров. Предпочтения получают веса по порядку: первое - наибольший.
const (
	DefaultWeight = 0.4
	plotsBonus    = 0.1
	topN          = 3
)

var preferenceWeights = [3]float64{0.7, 0.6, 0.5}

// Dataset предоставляет загруженные записи о районах.
// Возвращает dataset.ErrNotLoaded, пока загрузка не завершена.
type Dataset interface {
	Records() ([]models.Neighborhood, error)
}

// ZoneClassifier определяет зону района.
type ZoneClassifier interface {
	ZoneOf(area string) (models.Zone, bool)
}

// Query описывает запрос на подбор районов.
type Query struct {
	SelectedArea string
	Budget       float64 // 0 отключает фильтр по бюджету
	Preferences  [3]models.Attribute
}

// Result содержит результат подбора.
type Result struct {
	Top3               []models.ScoredNeighborhood
	SelectedAreaInTop3 bool
	SelectedAreaData   *models.ScoredNeighborhood
	Zone               *models.Zone
	TotalFilteredAreas int
	Forced             bool // выбранный район занял место, не попав в тройку по оценке
}

// Engine вычисляет рекомендации по неизменяемому снимку набора данных.
// Внутреннего изменяемого состояния нет, поэтому вызовы безопасны из нескольких горутин.
type Engine struct {
	dataset Dataset
	zones   ZoneClassifier
}

// NewEngine создает движок рекомендаций.
func NewEngine(dataset Dataset, zones ZoneClassifier) *Engine {
	return &Engine{
		dataset: dataset,
		zones:   zones,
	}
}

// Weights строит карту весов по трём предпочтениям.
// Остальные параметры получают DefaultWeight. При повторе предпочтения
// побеждает более поздний слот.
func Weights(prefs [3]models.Attribute) map[models.Attribute]float64 {
	weights := make(map[models.Attribute]float64, len(models.Attributes))
	for _, a := range models.Attributes {
		weights[a] = DefaultWeight
	}
	for i, p := range prefs {
		weights[p] = preferenceWeights[i]
	}
	return weights
}

// Recommend выполняет подбор районов для запроса.
// Единственная ошибка - незагруженный набор данных; пустой результат ошибкой не считается.
func (e *Engine) Recommend(q Query) (*Result, error) {
	records, err := e.dataset.Records()
	if err != nil {
		return nil, err
	}

	var desiredZone *models.Zone
	if z, ok := e.zones.ZoneOf(q.SelectedArea); ok {
		desiredZone = &z
	}

	filtered := make([]models.ScoredNeighborhood, 0, len(records))
	for _, r := range records {
		scored := models.ScoredNeighborhood{
			Neighborhood:     r,
			ResidentialScore: r.ResidentialScore(),
			SafetyScore:      r.SafetyScore(),
		}
		if z, ok := e.zones.ZoneOf(r.Location); ok {
			scored.Zone = &z
		}

		// Бюджет сравнивается с CostScore напрямую.
		if q.Budget > 0 && r.CostScore < q.Budget {
			continue
		}
		if desiredZone != nil && (scored.Zone == nil || *scored.Zone != *desiredZone) {
			continue
		}
		filtered = append(filtered, scored)
	}

	weights := Weights(q.Preferences)
	meanPlots := meanAvailablePlots(filtered)

	for i := range filtered {
		filtered[i].FinalScore = finalScore(&filtered[i], weights, meanPlots)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].FinalScore > filtered[j].FinalScore
	})

	n := topN
	if len(filtered) < n {
		n = len(filtered)
	}
	top := make([]models.ScoredNeighborhood, n)
	copy(top, filtered[:n])

	result := &Result{
		Zone:               desiredZone,
		TotalFilteredAreas: len(filtered),
	}

	for i := range filtered {
		if strings.EqualFold(filtered[i].Location, q.SelectedArea) {
			selected := filtered[i]
			result.SelectedAreaData = &selected
			break
		}
	}

	result.SelectedAreaInTop3 = containsArea(top, q.SelectedArea)
	if !result.SelectedAreaInTop3 && result.SelectedAreaData != nil {
		// Выбранный район всегда виден пользователю: он занимает третье место.
		if len(top) == topN {
			top[topN-1] = *result.SelectedAreaData
		} else {
			top = append(top, *result.SelectedAreaData)
		}
		sort.SliceStable(top, func(i, j int) bool {
			return top[i].FinalScore > top[j].FinalScore
		})
		result.SelectedAreaInTop3 = true
		result.Forced = true
	}

	result.Top3 = top
	return result, nil
}

// finalScore считает взвешенную сумму параметров и поправку на свободные участки.
func finalScore(n *models.ScoredNeighborhood, weights map[models.Attribute]float64, meanPlots float64) float64 {
	var score float64
	for _, a := range models.Attributes {
		v, ok := n.Neighborhood.Value(a)
		if !ok {
			continue
		}
		score += v * weights[a]
	}
	if n.AvailablePlots != nil {
		score += plotsBonus * (float64(*n.AvailablePlots) - meanPlots)
	}
	return score
}

// meanAvailablePlots считает среднее число участков по отфильтрованному набору.
// Отсутствующее значение считается нулём.
func meanAvailablePlots(items []models.ScoredNeighborhood) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum int
	for _, it := range items {
		if it.AvailablePlots != nil {
			sum += *it.AvailablePlots
		}
	}
	return float64(sum) / float64(len(items))
}

func containsArea(items []models.ScoredNeighborhood, area string) bool {
	for _, it := range items {
		if strings.EqualFold(it.Location, area) {
			return true
		}
	}
	return false
}
