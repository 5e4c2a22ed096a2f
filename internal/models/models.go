package models

import (
	"fmt"
	"time"
)

// Attribute представляет имя оцениваемого параметра района.
// Набор закрыт: значения вне перечисления отклоняются на границе API.
type Attribute string

const (
	FloodScore        Attribute = "FloodScore"
	HospitalScore     Attribute = "HospitalScore"
	CollegeScore      Attribute = "CollegeScore"
	FactoryScore      Attribute = "FactoryScore"
	CrimeScore        Attribute = "CrimeScore"
	ConnectivityScore Attribute = "ConnectivityScore"
	MallScore         Attribute = "MallScore"
	PowerScore        Attribute = "PowerScore"
	ServicesScore     Attribute = "ServicesScore"
	CostScore         Attribute = "CostScore"
	ResidentialScore  Attribute = "ResidentialScore"
	SafetyScore       Attribute = "SafetyScore"
)

// Attributes содержит все параметры в фиксированном порядке.
// Порядок определяет порядок суммирования при расчёте итоговой оценки.
var Attributes = []Attribute{
	FloodScore,
	HospitalScore,
	CollegeScore,
	FactoryScore,
	CrimeScore,
	ConnectivityScore,
	MallScore,
	PowerScore,
	ServicesScore,
	CostScore,
	ResidentialScore,
	SafetyScore,
}

var attributeDisplay = map[Attribute]string{
	FloodScore:        "Flood Score",
	HospitalScore:     "Hospital Score",
	CollegeScore:      "College Score",
	FactoryScore:      "Factory Score",
	CrimeScore:        "Crime Score",
	ConnectivityScore: "Connectivity Score",
	MallScore:         "Mall Score",
	PowerScore:        "Power Score",
	ServicesScore:     "Services Score",
	CostScore:         "Cost Score",
	ResidentialScore:  "Residential Score (Low Factory)",
	SafetyScore:       "Safety Score (Low Crime)",
}

// ParseAttribute преобразует строку в Attribute.
// Возвращает ошибку для имени вне перечисления.
func ParseAttribute(s string) (Attribute, error) {
	a := Attribute(s)
	if _, ok := attributeDisplay[a]; !ok {
		return "", fmt.Errorf("unknown attribute %q", s)
	}
	return a, nil
}

// Display возвращает человекочитаемое название параметра.
func (a Attribute) Display() string {
	return attributeDisplay[a]
}

// Zone представляет географическую зону Ченнаи.
type Zone string

const (
	ZoneCentral       Zone = "Central"
	ZoneNorth         Zone = "North"
	ZoneSouth         Zone = "South"
	ZoneWest          Zone = "West"
	ZoneEastCoast     Zone = "East Coast"
	ZoneInstitutional Zone = "Institutional"
)

// Neighborhood представляет одну строку набора данных о районах.
// Набор загружается один раз и не изменяется до конца жизни процесса.
type Neighborhood struct {
	Location          string  `json:"location"`
	FloodScore        float64 `json:"flood_score"`
	HospitalScore     float64 `json:"hospital_score"`
	CollegeScore      float64 `json:"college_score"`
	FactoryScore      float64 `json:"factory_score"`
	CrimeScore        float64 `json:"crime_score"`
	ConnectivityScore float64 `json:"connectivity_score"`
	MallScore         float64 `json:"mall_score"`
	PowerScore        float64 `json:"power_score"`
	ServicesScore     float64 `json:"services_score"`
	CostScore         float64 `json:"cost_score"`
	FloodRisk         string  `json:"flood_risk,omitempty"`
	AvailablePlots    *int    `json:"available_plots,omitempty"` // nil, если колонка пуста
}

// ResidentialScore возвращает производную оценку: 10 - FactoryScore.
func (n Neighborhood) ResidentialScore() float64 {
	return 10 - n.FactoryScore
}

// SafetyScore возвращает производную оценку: 10 - CrimeScore.
func (n Neighborhood) SafetyScore() float64 {
	return 10 - n.CrimeScore
}

// Value возвращает значение параметра района, включая производные.
func (n Neighborhood) Value(a Attribute) (float64, bool) {
	switch a {
	case FloodScore:
		return n.FloodScore, true
	case HospitalScore:
		return n.HospitalScore, true
	case CollegeScore:
		return n.CollegeScore, true
	case FactoryScore:
		return n.FactoryScore, true
	case CrimeScore:
		return n.CrimeScore, true
	case ConnectivityScore:
		return n.ConnectivityScore, true
	case MallScore:
		return n.MallScore, true
	case PowerScore:
		return n.PowerScore, true
	case ServicesScore:
		return n.ServicesScore, true
	case CostScore:
		return n.CostScore, true
	case ResidentialScore:
		return n.ResidentialScore(), true
	case SafetyScore:
		return n.SafetyScore(), true
	}
	return 0, false
}

// ScoredNeighborhood представляет район с оценками, вычисленными в рамках одного запроса.
type ScoredNeighborhood struct {
	Neighborhood
	Zone             *Zone   `json:"zone"`
	ResidentialScore float64 `json:"residential_score"`
	SafetyScore      float64 `json:"safety_score"`
	FinalScore       float64 `json:"final_score"`
}

// RecommendRequest представляет запрос на рекомендацию районов
type RecommendRequest struct {
	SelectedArea string   `json:"selected_area" validate:"required"`
	Budget       float64  `json:"budget" validate:"gte=0"`
	Preferences  []string `json:"preferences" validate:"len=3,unique,dive,attribute"`
}

// RecommendResponse представляет результат подбора районов
type RecommendResponse struct {
	Top3               []ScoredNeighborhood `json:"top3"`
	SelectedAreaInTop3 bool                 `json:"selected_area_in_top3"`
	Forced             bool                 `json:"forced"` // выбранный район вытеснил третье место
	SelectedAreaData   *ScoredNeighborhood  `json:"selected_area_data,omitempty"`
	Zone               *Zone                `json:"zone"`
	TotalFilteredAreas int                  `json:"total_filtered_areas"`
	Forecast           []ForecastPoint      `json:"forecast,omitempty"`
}

// Parameter описывает параметр, доступный для выбора в качестве предпочтения.
type Parameter struct {
	Key     Attribute `json:"key"`
	Display string    `json:"display"`
}

// AreaZone представляет ответ на запрос зоны района.
type AreaZone struct {
	Area string `json:"area"`
	Zone *Zone  `json:"zone"`
}

// PlotsInfo представляет количество свободных участков в районе.
type PlotsInfo struct {
	Location       string `json:"location"`
	AvailablePlots int    `json:"available_plots"`
	Zone           *Zone  `json:"zone"`
}

// PlotsResponse представляет сводку по свободным участкам.
type PlotsResponse struct {
	PlotsData  []PlotsInfo `json:"plots_data"`
	TotalPlots int         `json:"total_plots"`
}

// NeighborhoodOverview содержит оценки района и составные показатели для обзора.
type NeighborhoodOverview struct {
	Location            string  `json:"location"`
	Zone                *Zone   `json:"zone"`
	SafetyScore         float64 `json:"safety_score"`
	ConnectivityScore   float64 `json:"connectivity_score"`
	FloodScore          float64 `json:"flood_score"`
	HospitalScore       float64 `json:"hospital_score"`
	CollegeScore        float64 `json:"college_score"`
	MallScore           float64 `json:"mall_score"`
	PowerScore          float64 `json:"power_score"`
	ServicesScore       float64 `json:"services_score"`
	CostScore           float64 `json:"cost_score"`
	FactoryScore        float64 `json:"factory_score"`
	CrimeScore          float64 `json:"crime_score"`
	AmenitiesScore      float64 `json:"amenities_score"`
	EnvironmentScore    float64 `json:"environment_score"`
	LifestyleScore      float64 `json:"lifestyle_score"`
	InfrastructureScore float64 `json:"infrastructure_score"`
	FloodRisk           string  `json:"flood_risk"`
	AvailablePlots      int     `json:"available_plots"`
}

// OverviewResponse представляет обзор всех районов набора данных.
type OverviewResponse struct {
	Neighborhoods []NeighborhoodOverview `json:"neighborhoods"`
	TotalCount    int                    `json:"total_count"`
	Zones         []Zone                 `json:"zones"`
}

// ZoneStats содержит средние показатели по зоне.
type ZoneStats struct {
	Zone            Zone    `json:"zone"`
	Count           int     `json:"count"`
	AvgSafety       float64 `json:"avg_safety"`
	AvgConnectivity float64 `json:"avg_connectivity"`
	AvgAmenities    float64 `json:"avg_amenities"`
}

// SearchResult представляет краткую запись о районе из результатов поиска.
type SearchResult struct {
	Location string  `json:"location"`
	Score    float64 `json:"score"`
}

// SearchHistoryEntry представляет запись истории поиска в PostgreSQL
type SearchHistoryEntry struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	SearchDate   time.Time      `json:"search_date"`
	SelectedArea string         `json:"selected_area"`
	Budget       float64        `json:"budget"`
	Preferences  []string       `json:"preferences"`
	Results      []SearchResult `json:"results"`
}

// DateCount представляет количество поисков за день.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// AreaCount представляет популярность района среди поисков.
type AreaCount struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
}

// BudgetPoint представляет бюджет одного из последних поисков.
type BudgetPoint struct {
	Search int     `json:"search"`
	Budget float64 `json:"budget"`
}

// SearchAnalytics представляет аналитику по истории поиска пользователя.
type SearchAnalytics struct {
	TotalSearches int           `json:"total_searches"`
	SearchTrends  []DateCount   `json:"search_trends"`
	PopularAreas  []AreaCount   `json:"popular_areas"`
	BudgetTrends  []BudgetPoint `json:"budget_trends"`
}

// ForecastRequest представляет запрос прогноза цен
type ForecastRequest struct {
	Area   string `json:"area" validate:"required"`
	Months int    `json:"months,omitempty" validate:"gte=0"`
}

// ForecastPoint представляет одну точку прогноза цен на месяц.
type ForecastPoint struct {
	Month      string  `json:"ds"`
	Value      float64 `json:"yhat"`
	ValueLower float64 `json:"yhat_lower"`
	ValueUpper float64 `json:"yhat_upper"`
}

// ForecastResponse представляет ответ с прогнозом цен
type ForecastResponse struct {
	Area     string          `json:"area"`
	Forecast []ForecastPoint `json:"forecast"`
}
