// Package handlers содержит HTTP обработчики для REST API подбора районов.
package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/akozadaev/go_neighborhood_recommender/internal/dataset"
	"github.com/akozadaev/go_neighborhood_recommender/internal/forecast"
	"github.com/akozadaev/go_neighborhood_recommender/internal/logging"
	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
	"github.com/akozadaev/go_neighborhood_recommender/internal/recommend"
	"github.com/akozadaev/go_neighborhood_recommender/internal/storage"
	"github.com/akozadaev/go_neighborhood_recommender/internal/validation"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

// UserIDHeader содержит идентификатор пользователя, выставляемый слоем аутентификации.
const UserIDHeader = "X-User-ID"

// Recommender подбирает районы по запросу.
type Recommender interface {
	Recommend(q recommend.Query) (*recommend.Result, error)
}

// Dataset предоставляет загруженный набор данных о районах.
type Dataset interface {
	Records() ([]models.Neighborhood, error)
	Locations() ([]string, error)
	Status() string
}

// ZoneClassifier определяет зоны районов.
type ZoneClassifier interface {
	ZoneOf(area string) (models.Zone, bool)
	Zones() []models.Zone
}

// HistoryStore хранит историю поиска пользователей.
type HistoryStore interface {
	AddSearch(ctx context.Context, entry *models.SearchHistoryEntry) error
	ListSearches(ctx context.Context, userID string, limit int) ([]*models.SearchHistoryEntry, error)
	DeleteSearch(ctx context.Context, userID, id string) error
	ClearSearches(ctx context.Context, userID string) error
}

// NeighborhoodIndex ищет подробные данные о районах.
type NeighborhoodIndex interface {
	FindNeighborhoods(ctx context.Context, locations []string) ([]storage.NeighborhoodDocument, error)
}

// Forecaster возвращает прогноз цен для района.
type Forecaster interface {
	Forecast(ctx context.Context, area string, months int) ([]models.ForecastPoint, error)
}

// Deps перечисляет зависимости обработчиков.
type Deps struct {
	Engine   Recommender
	Dataset  Dataset
	Zones    ZoneClassifier
	History  HistoryStore
	Index    NeighborhoodIndex
	Forecast Forecaster
}

// Handlers содержит зависимости для обработки HTTP запросов.
// Набор данных хранится в памяти, история поиска - в PostgreSQL,
// подробные карточки районов - в Elasticsearch.
type Handlers struct {
	engine   Recommender       // Движок рекомендаций
	dataset  Dataset           // Набор данных о районах
	zones    ZoneClassifier    // Классификатор зон
	history  HistoryStore      // История поиска в PostgreSQL
	index    NeighborhoodIndex // Индекс районов в Elasticsearch/OpenSearch
	forecast Forecaster        // Клиент сервиса прогноза цен
}

// NewHandlers создает новый экземпляр Handlers с заданными зависимостями.
func NewHandlers(deps Deps) *Handlers {
	return &Handlers{
		engine:   deps.Engine,
		dataset:  deps.Dataset,
		zones:    deps.Zones,
		history:  deps.History,
		index:    deps.Index,
		forecast: deps.Forecast,
	}
}

// envelope - общий формат ответа API.
type envelope struct {
	Success bool                    `json:"success"`
	Data    interface{}             `json:"data,omitempty"`
	Error   string                  `json:"error,omitempty"`
	Details []validation.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Error encoding response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeErrorBody(w, r, status, envelope{Error: message})
}

func writeErrorBody(w http.ResponseWriter, r *http.Request, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Error encoding response")
	}
}

// writeValidationError отвечает 400 с перечнем нарушенных правил.
func writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeErrorBody(w, r, http.StatusBadRequest, envelope{Error: verr.Error(), Details: verr.Fields})
		return
	}
	writeError(w, r, http.StatusBadRequest, err.Error())
}

// writeDatasetError отвечает 503, пока набор данных не загружен, иначе 500.
func writeDatasetError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, dataset.ErrNotLoaded) {
		writeError(w, r, http.StatusServiceUnavailable, "Data not loaded yet")
		return
	}
	logging.Ctx(r.Context()).Error().Err(err).Msg("Error reading dataset")
	writeError(w, r, http.StatusInternalServerError, "Internal server error")
}

// HealthCheck обрабатывает GET запрос на проверку работоспособности сервиса.
// Сообщает также состояние загрузки набора данных.
// Эндпоинт: GET /health
//
// @Summary      Проверка работоспособности сервиса
// @Description  Возвращает статус сервиса и состояние загрузки набора данных (ready, loading, failed).
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"dataset": h.dataset.Status(),
	})
}

// GetAreas обрабатывает GET запрос на получение списка всех районов.
// Эндпоинт: GET /areas
//
// @Summary      Получить список районов
// @Description  Возвращает названия всех районов набора данных в алфавитном порядке
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   string
// @Failure      503  {object}  map[string]string  "Данные еще не загружены"
// @Router       /areas [get]
func (h *Handlers) GetAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.dataset.Locations()
	if err != nil {
		writeDatasetError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, areas)
}

// GetAreaZone обрабатывает GET запрос на получение зоны района.
// Для неизвестного района зона равна null.
// Эндпоинт: GET /zones/{area}
//
// @Summary      Получить зону района
// @Description  Возвращает географическую зону района. Название сравнивается с учетом регистра.
// @Tags         catalog
// @Produce      json
// @Param        area  path      string  true  "Название района"
// @Success      200   {object}  models.AreaZone
// @Router       /zones/{area} [get]
func (h *Handlers) GetAreaZone(w http.ResponseWriter, r *http.Request) {
	area := mux.Vars(r)["area"]

	resp := models.AreaZone{Area: area}
	if z, ok := h.zones.ZoneOf(area); ok {
		resp.Zone = &z
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// GetParameters обрабатывает GET запрос на получение параметров для выбора предпочтений.
// Эндпоинт: GET /parameters
//
// @Summary      Получить список параметров
// @Description  Возвращает 12 параметров района, доступных в качестве предпочтений
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  models.Parameter
// @Router       /parameters [get]
func (h *Handlers) GetParameters(w http.ResponseWriter, r *http.Request) {
	params := make([]models.Parameter, 0, len(models.Attributes))
	for _, a := range models.Attributes {
		params = append(params, models.Parameter{Key: a, Display: a.Display()})
	}
	writeJSON(w, r, http.StatusOK, params)
}

// GetPlots обрабатывает GET запрос на получение районов со свободными участками.
// Эндпоинт: GET /neighborhoods/plots
//
// @Summary      Получить свободные участки
// @Description  Возвращает районы, где есть свободные участки, и их общее количество
// @Tags         neighborhoods
// @Produce      json
// @Success      200  {object}  models.PlotsResponse
// @Failure      503  {object}  map[string]string  "Данные еще не загружены"
// @Router       /neighborhoods/plots [get]
func (h *Handlers) GetPlots(w http.ResponseWriter, r *http.Request) {
	records, err := h.dataset.Records()
	if err != nil {
		writeDatasetError(w, r, err)
		return
	}

	resp := models.PlotsResponse{PlotsData: []models.PlotsInfo{}}
	for _, n := range records {
		if n.AvailablePlots == nil || *n.AvailablePlots <= 0 {
			continue
		}
		info := models.PlotsInfo{Location: n.Location, AvailablePlots: *n.AvailablePlots}
		if z, ok := h.zones.ZoneOf(n.Location); ok {
			info.Zone = &z
		}
		resp.PlotsData = append(resp.PlotsData, info)
		resp.TotalPlots += info.AvailablePlots
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// GetNeighborhoodsOverview обрабатывает GET запрос на обзор всех районов.
// Эндпоинт: GET /neighborhoods/overview
//
// @Summary      Получить обзор районов
// @Description  Возвращает оценки каждого района, его зону, число свободных участков и составные показатели: инфраструктура, экология, образ жизни, инженерные сети. Составные показатели округляются до одного знака.
// @Tags         neighborhoods
// @Produce      json
// @Success      200  {object}  models.OverviewResponse
// @Failure      503  {object}  map[string]string  "Данные еще не загружены"
// @Router       /neighborhoods/overview [get]
func (h *Handlers) GetNeighborhoodsOverview(w http.ResponseWriter, r *http.Request) {
	records, err := h.dataset.Records()
	if err != nil {
		writeDatasetError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, overview(records, h.zones))
}

// defaultFloodRisk подставляется, если в наборе нет уровня риска затопления.
const defaultFloodRisk = "Medium"

func overview(records []models.Neighborhood, zones ZoneClassifier) models.OverviewResponse {
	resp := models.OverviewResponse{
		Neighborhoods: make([]models.NeighborhoodOverview, 0, len(records)),
		Zones:         []models.Zone{},
	}
	present := make(map[models.Zone]bool)

	for _, n := range records {
		item := models.NeighborhoodOverview{
			Location:          n.Location,
			SafetyScore:       n.SafetyScore(),
			ConnectivityScore: n.ConnectivityScore,
			FloodScore:        n.FloodScore,
			HospitalScore:     n.HospitalScore,
			CollegeScore:      n.CollegeScore,
			MallScore:         n.MallScore,
			PowerScore:        n.PowerScore,
			ServicesScore:     n.ServicesScore,
			CostScore:         n.CostScore,
			FactoryScore:      n.FactoryScore,
			CrimeScore:        n.CrimeScore,
			FloodRisk:         n.FloodRisk,
		}
		setCompositeScores(&item, n)
		if item.FloodRisk == "" {
			item.FloodRisk = defaultFloodRisk
		}
		if n.AvailablePlots != nil {
			item.AvailablePlots = *n.AvailablePlots
		}
		if z, ok := zones.ZoneOf(n.Location); ok {
			item.Zone = &z
			present[z] = true
		}
		resp.Neighborhoods = append(resp.Neighborhoods, item)
	}

	for _, z := range zones.Zones() {
		if present[z] {
			resp.Zones = append(resp.Zones, z)
		}
	}
	resp.TotalCount = len(resp.Neighborhoods)
	return resp
}

// setCompositeScores рассчитывает составные показатели района с точностью до 0.1.
func setCompositeScores(item *models.NeighborhoodOverview, n models.Neighborhood) {
	item.AmenitiesScore = round1((n.HospitalScore + n.CollegeScore + n.MallScore + n.ServicesScore) / 4)
	item.EnvironmentScore = round1((n.FloodScore + n.ResidentialScore() + n.SafetyScore()) / 3)
	item.LifestyleScore = round1((n.MallScore + n.ConnectivityScore + n.ServicesScore + n.PowerScore) / 4)
	item.InfrastructureScore = round1((n.PowerScore + n.ConnectivityScore + n.ServicesScore + n.HospitalScore) / 4)
}

// GetZoneStats обрабатывает GET запрос на получение средних показателей по зонам.
// Эндпоинт: GET /zones/stats
//
// @Summary      Получить статистику по зонам
// @Description  Возвращает число районов и средние оценки безопасности, транспортной доступности и инфраструктуры по каждой зоне
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   models.ZoneStats
// @Failure      503  {object}  map[string]string  "Данные еще не загружены"
// @Router       /zones/stats [get]
func (h *Handlers) GetZoneStats(w http.ResponseWriter, r *http.Request) {
	records, err := h.dataset.Records()
	if err != nil {
		writeDatasetError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, zoneStats(records, h.zones))
}

func zoneStats(records []models.Neighborhood, zones ZoneClassifier) []models.ZoneStats {
	type totals struct {
		count                         int
		safety, connectivity, amenity float64
	}
	byZone := make(map[models.Zone]*totals)
	for _, n := range records {
		z, ok := zones.ZoneOf(n.Location)
		if !ok {
			continue
		}
		t := byZone[z]
		if t == nil {
			t = &totals{}
			byZone[z] = t
		}
		t.count++
		t.safety += n.SafetyScore()
		t.connectivity += n.ConnectivityScore
		t.amenity += (n.HospitalScore + n.CollegeScore + n.MallScore + n.ServicesScore) / 4
	}

	stats := make([]models.ZoneStats, 0, len(byZone))
	for _, z := range zones.Zones() {
		t, ok := byZone[z]
		if !ok {
			continue
		}
		n := float64(t.count)
		stats = append(stats, models.ZoneStats{
			Zone:            z,
			Count:           t.count,
			AvgSafety:       round1(t.safety / n),
			AvgConnectivity: round1(t.connectivity / n),
			AvgAmenities:    round1(t.amenity / n),
		})
	}
	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// GetDetailedNeighborhoods обрабатывает GET запрос на получение подробных данных о районах.
// Принимает названия через запятую и ищет их в индексе Elasticsearch.
// Эндпоинт: GET /neighborhoods/detailed/{areas}
//
// @Summary      Получить подробные данные о районах
// @Description  Возвращает карточки районов из индекса. Названия передаются через запятую и сравниваются без учета регистра.
// @Tags         neighborhoods
// @Produce      json
// @Param        areas  path      string  true  "Названия районов через запятую"
// @Success      200    {array}   storage.NeighborhoodDocument
// @Failure      400    {object}  map[string]string  "Неверный запрос"
// @Failure      404    {object}  map[string]string  "Районы не найдены"
// @Failure      500    {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /neighborhoods/detailed/{areas} [get]
func (h *Handlers) GetDetailedNeighborhoods(w http.ResponseWriter, r *http.Request) {
	var areas []string
	for _, a := range strings.Split(mux.Vars(r)["areas"], ",") {
		if a = strings.TrimSpace(a); a != "" {
			areas = append(areas, a)
		}
	}
	if len(areas) == 0 {
		writeError(w, r, http.StatusBadRequest, "At least one area is required")
		return
	}

	docs, err := h.index.FindNeighborhoods(r.Context(), areas)
	if err != nil {
		if errors.Is(err, storage.ErrNeighborhoodNotFound) {
			writeError(w, r, http.StatusNotFound, "Neighborhoods not found")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Strs("areas", areas).Msg("Error finding neighborhoods")
		writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, docs)
}

// GetForecast обрабатывает POST запрос на прогноз цен для района.
// Эндпоинт: POST /forecast
//
// @Summary      Получить прогноз цен
// @Description  Запрашивает помесячный прогноз средней цены у внешнего сервиса. Горизонт от 1 до 36 месяцев, по умолчанию 12.
// @Tags         forecast
// @Accept       json
// @Produce      json
// @Param        request  body      models.ForecastRequest  true  "Запрос прогноза"
// @Success      200      {object}  models.ForecastResponse
// @Failure      400      {object}  map[string]string  "Неверный запрос"
// @Failure      404      {object}  map[string]string  "Нет данных по району"
// @Failure      503      {object}  map[string]string  "Сервис прогноза недоступен"
// @Failure      500      {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /forecast [post]
func (h *Handlers) GetForecast(w http.ResponseWriter, r *http.Request) {
	var req models.ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	points, err := h.forecast.Forecast(r.Context(), req.Area, req.Months)
	if err != nil {
		switch {
		case errors.Is(err, forecast.ErrAreaNotFound):
			writeError(w, r, http.StatusNotFound, "No forecast data for area: "+req.Area)
		case errors.Is(err, forecast.ErrUnavailable):
			writeError(w, r, http.StatusServiceUnavailable, "Forecast service unavailable")
		default:
			logging.Ctx(r.Context()).Error().Err(err).Str("area", req.Area).Msg("Error fetching forecast")
			writeError(w, r, http.StatusInternalServerError, "Failed to fetch forecast data")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, models.ForecastResponse{Area: req.Area, Forecast: points})
}
