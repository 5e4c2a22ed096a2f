package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/akozadaev/go_neighborhood_recommender/internal/logging"
	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
	"github.com/akozadaev/go_neighborhood_recommender/internal/storage"
	"github.com/gorilla/mux"
)

// Ограничения аналитики по истории поиска.
const (
	trendDays       = 30
	popularAreasMax = 10
	budgetPointsMax = 10
)

// userID возвращает идентификатор пользователя или отвечает 401.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(UserIDHeader)
	if id == "" {
		writeError(w, r, http.StatusUnauthorized, "X-User-ID header is required")
		return "", false
	}
	return id, true
}

// GetHistory обрабатывает GET запрос на получение истории поиска пользователя.
// Эндпоинт: GET /history
//
// @Summary      Получить историю поиска
// @Description  Возвращает до 20 последних поисков пользователя, новые первыми
// @Tags         history
// @Produce      json
// @Param        X-User-ID  header    string  true   "Идентификатор пользователя"
// @Param        limit      query     int     false  "Максимальное число записей"
// @Success      200        {array}   models.SearchHistoryEntry
// @Failure      401        {object}  map[string]string  "Не указан пользователь"
// @Failure      500        {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /history [get]
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}

	limit := storage.HistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.history.ListSearches(r.Context(), user, limit)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", user).Msg("Error listing search history")
		writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if entries == nil {
		entries = []*models.SearchHistoryEntry{}
	}
	writeJSON(w, r, http.StatusOK, entries)
}

// DeleteHistoryEntry обрабатывает DELETE запрос на удаление записи истории.
// Эндпоинт: DELETE /history/{id}
//
// @Summary      Удалить запись истории
// @Tags         history
// @Produce      json
// @Param        X-User-ID  header    string  true  "Идентификатор пользователя"
// @Param        id         path      string  true  "Идентификатор записи"
// @Success      200        {object}  map[string]string
// @Failure      401        {object}  map[string]string  "Не указан пользователь"
// @Failure      404        {object}  map[string]string  "Запись не найдена"
// @Failure      500        {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /history/{id} [delete]
func (h *Handlers) DeleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	if err := h.history.DeleteSearch(r.Context(), user, id); err != nil {
		if errors.Is(err, storage.ErrHistoryNotFound) {
			writeError(w, r, http.StatusNotFound, "Search history entry not found")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", user).Msg("Error deleting search history entry")
		writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"id": id})
}

// ClearHistory обрабатывает DELETE запрос на очистку истории пользователя.
// Эндпоинт: DELETE /history
//
// @Summary      Очистить историю поиска
// @Tags         history
// @Produce      json
// @Param        X-User-ID  header    string  true  "Идентификатор пользователя"
// @Success      200        {object}  map[string]string
// @Failure      401        {object}  map[string]string  "Не указан пользователь"
// @Failure      500        {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /history [delete]
func (h *Handlers) ClearHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.history.ClearSearches(r.Context(), user); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", user).Msg("Error clearing search history")
		writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "cleared"})
}

// GetSearchAnalytics обрабатывает GET запрос на получение аналитики по истории поиска.
// Эндпоинт: GET /analytics/search-history
//
// @Summary      Получить аналитику поиска
// @Description  Возвращает число поисков, количество поисков по дням (последние 30 дат), 10 самых частых районов и бюджеты последних 10 поисков с ненулевым бюджетом
// @Tags         history
// @Produce      json
// @Param        X-User-ID  header    string  true  "Идентификатор пользователя"
// @Success      200        {object}  models.SearchAnalytics
// @Failure      401        {object}  map[string]string  "Не указан пользователь"
// @Failure      500        {object}  map[string]string  "Внутренняя ошибка сервера"
// @Router       /analytics/search-history [get]
func (h *Handlers) GetSearchAnalytics(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}

	entries, err := h.history.ListSearches(r.Context(), user, storage.HistoryLimit)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", user).Msg("Error loading search history for analytics")
		writeError(w, r, http.StatusInternalServerError, "Failed to calculate analytics")
		return
	}
	writeJSON(w, r, http.StatusOK, searchAnalytics(entries))
}

// searchAnalytics строит аналитику по записям, упорядоченным от новых к старым.
func searchAnalytics(entries []*models.SearchHistoryEntry) models.SearchAnalytics {
	// Хронологический порядок.
	chrono := make([]*models.SearchHistoryEntry, len(entries))
	for i, e := range entries {
		chrono[len(entries)-1-i] = e
	}

	days := make(map[string]int)
	areas := make(map[string]int)
	for _, e := range chrono {
		days[e.SearchDate.UTC().Format(time.DateOnly)]++
		if e.SelectedArea != "" {
			areas[e.SelectedArea]++
		}
	}

	trends := make([]models.DateCount, 0, len(days))
	for _, d := range sortedKeys(days) {
		trends = append(trends, models.DateCount{Date: d, Count: days[d]})
	}
	if len(trends) > trendDays {
		trends = trends[len(trends)-trendDays:]
	}

	popular := make([]models.AreaCount, 0, len(areas))
	for _, a := range sortedKeys(areas) {
		popular = append(popular, models.AreaCount{Area: a, Count: areas[a]})
	}
	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].Count > popular[j].Count
	})
	if len(popular) > popularAreasMax {
		popular = popular[:popularAreasMax]
	}

	var budgets []float64
	for _, e := range chrono {
		if e.Budget > 0 {
			budgets = append(budgets, e.Budget)
		}
	}
	if len(budgets) > budgetPointsMax {
		budgets = budgets[len(budgets)-budgetPointsMax:]
	}
	budgetTrends := make([]models.BudgetPoint, 0, len(budgets))
	for i, b := range budgets {
		budgetTrends = append(budgetTrends, models.BudgetPoint{Search: i + 1, Budget: b})
	}

	return models.SearchAnalytics{
		TotalSearches: len(entries),
		SearchTrends:  trends,
		PopularAreas:  popular,
		BudgetTrends:  budgetTrends,
	}
}

// sortedKeys возвращает ключи карты по возрастанию.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
