package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/akozadaev/go_neighborhood_recommender/internal/dataset"
	"github.com/akozadaev/go_neighborhood_recommender/internal/logging"
	"github.com/akozadaev/go_neighborhood_recommender/internal/metrics"
	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
	"github.com/akozadaev/go_neighborhood_recommender/internal/recommend"
	"github.com/akozadaev/go_neighborhood_recommender/internal/validation"
	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

// Recommend обрабатывает POST запрос на подбор районов.
// Принимает RecommendRequest в теле запроса и возвращает тройку лучших районов
// в зоне выбранного района. Выбранный район всегда присутствует в тройке,
// если он прошел фильтры.
// Эндпоинт: POST /recommend
//
// @Summary      Подобрать районы
// @Description  Возвращает три лучших района той же зоны, что и выбранный. Оценка - взвешенная сумма 12 параметров: три предпочтения получают веса 0.7, 0.6 и 0.5, остальные 0.4. Районы с CostScore ниже бюджета отбрасываются.
// @Tags         recommend
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string                  false  "Идентификатор пользователя для истории поиска"
// @Param        request    body      models.RecommendRequest  true   "Запрос на подбор"
// @Success      200        {object}  models.RecommendResponse
// @Failure      400        {object}  map[string]string  "Неверный запрос"
// @Failure      503        {object}  map[string]string  "Данные еще не загружены"
// @Failure      500        {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /recommend [post]
func (h *Handlers) Recommend(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecommendationsTotal.WithLabelValues("invalid").Inc()
		writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		metrics.RecommendationsTotal.WithLabelValues("invalid").Inc()
		writeValidationError(w, r, err)
		return
	}

	q := recommend.Query{SelectedArea: req.SelectedArea, Budget: req.Budget}
	for i, p := range req.Preferences {
		// Имена уже проверены правилом attribute.
		q.Preferences[i], _ = models.ParseAttribute(p)
	}

	start := time.Now()
	result, err := h.engine.Recommend(q)
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, dataset.ErrNotLoaded) {
			metrics.RecommendationsTotal.WithLabelValues("not_loaded").Inc()
		} else {
			metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		}
		writeDatasetError(w, r, err)
		return
	}

	metrics.RecommendationsTotal.WithLabelValues("ok").Inc()
	metrics.RecommendationFilteredAreas.Observe(float64(result.TotalFilteredAreas))
	if result.Forced {
		metrics.SelectedAreaForced.Inc()
	}

	resp := models.RecommendResponse{
		Top3:               result.Top3,
		SelectedAreaInTop3: result.SelectedAreaInTop3,
		Forced:             result.Forced,
		SelectedAreaData:   result.SelectedAreaData,
		Zone:               result.Zone,
		TotalFilteredAreas: result.TotalFilteredAreas,
	}

	area := req.SelectedArea
	if result.SelectedAreaData != nil {
		area = result.SelectedAreaData.Location
	}

	// Прогноз и запись в историю не влияют на результат подбора.
	var g errgroup.Group
	g.Go(func() error {
		resp.Forecast = h.bestEffortForecast(r, area)
		return nil
	})
	if userID := r.Header.Get(UserIDHeader); userID != "" {
		g.Go(func() error {
			h.saveSearch(r, userID, &req, result.Top3)
			return nil
		})
	}
	_ = g.Wait()

	writeJSON(w, r, http.StatusOK, resp)
}

// bestEffortForecast возвращает прогноз для района или nil, если сервис не ответил.
func (h *Handlers) bestEffortForecast(r *http.Request, area string) []models.ForecastPoint {
	if h.forecast == nil {
		return nil
	}
	points, err := h.forecast.Forecast(r.Context(), area, 0)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("area", area).Msg("Forecast fetch failed, continuing without forecast")
		return nil
	}
	return points
}

// saveSearch сохраняет запрос в историю пользователя. Ошибки только логируются.
func (h *Handlers) saveSearch(r *http.Request, userID string, req *models.RecommendRequest, top []models.ScoredNeighborhood) {
	if h.history == nil {
		return
	}

	results := make([]models.SearchResult, 0, len(top))
	for _, n := range top {
		results = append(results, models.SearchResult{Location: n.Location, Score: n.FinalScore})
	}

	entry := &models.SearchHistoryEntry{
		UserID:       userID,
		SelectedArea: req.SelectedArea,
		Budget:       req.Budget,
		Preferences:  req.Preferences,
		Results:      results,
	}
	if err := h.history.AddSearch(r.Context(), entry); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", userID).Msg("Error saving search history")
	}
}
