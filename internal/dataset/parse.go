// Package dataset загружает табличный набор данных о районах в память.
//
// Набор читается один раз при старте процесса и после загрузки не изменяется,
// поэтому запросы читают его конкурентно без синхронизации.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/akozadaev/go_neighborhood_recommender/internal/logging"
	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
)

const (
	locationColumn  = "Location"
	floodRiskColumn = "FloodRisk"
	plotsColumn     = "AvailablePlots"
)

// ErrMalformed возвращается, если источник не удаётся разобрать.
var ErrMalformed = errors.New("malformed dataset")

// scoreColumns сопоставляет колонки с числовыми полями записи.
var scoreColumns = map[string]func(n *models.Neighborhood, v float64){
	"FloodScore":        func(n *models.Neighborhood, v float64) { n.FloodScore = v },
	"HospitalScore":     func(n *models.Neighborhood, v float64) { n.HospitalScore = v },
	"CollegeScore":      func(n *models.Neighborhood, v float64) { n.CollegeScore = v },
	"FactoryScore":      func(n *models.Neighborhood, v float64) { n.FactoryScore = v },
	"CrimeScore":        func(n *models.Neighborhood, v float64) { n.CrimeScore = v },
	"ConnectivityScore": func(n *models.Neighborhood, v float64) { n.ConnectivityScore = v },
	"MallScore":         func(n *models.Neighborhood, v float64) { n.MallScore = v },
	"PowerScore":        func(n *models.Neighborhood, v float64) { n.PowerScore = v },
	"ServicesScore":     func(n *models.Neighborhood, v float64) { n.ServicesScore = v },
	"CostScore":         func(n *models.Neighborhood, v float64) { n.CostScore = v },
}

// Parse читает CSV с заголовком и возвращает записи о районах.
// Строки без названия района пропускаются; при повторе названия
// сохраняется первая строка.
func Parse(r io.Reader) ([]models.Neighborhood, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty source", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrMalformed, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		columns[name] = i
	}

	locIdx, ok := columns[locationColumn]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s column", ErrMalformed, locationColumn)
	}

	var records []models.Neighborhood
	seen := make(map[string]bool)

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		location := strings.TrimSpace(row[locIdx])
		if location == "" {
			continue
		}
		// Выбранный район ищется без учета регистра, поэтому и дубликаты тоже.
		key := strings.ToLower(location)
		if seen[key] {
			logging.Warn().Str("location", location).Int("line", line).Msg("duplicate location in dataset, keeping first row")
			continue
		}
		seen[key] = true

		n := models.Neighborhood{Location: location}

		for name, set := range scoreColumns {
			idx, ok := columns[name]
			if !ok {
				continue
			}
			cell := strings.TrimSpace(row[idx])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d, column %s: %q is not a number", ErrMalformed, line, name, cell)
			}
			set(&n, v)
		}

		if idx, ok := columns[floodRiskColumn]; ok {
			n.FloodRisk = strings.TrimSpace(row[idx])
		}

		if idx, ok := columns[plotsColumn]; ok {
			plots, err := parsePlots(row[idx])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d, column %s: %v", ErrMalformed, line, plotsColumn, err)
			}
			n.AvailablePlots = plots
		}

		records = append(records, n)
	}

	return records, nil
}

// parsePlots разбирает количество свободных участков. Пустая ячейка означает отсутствие значения.
func parsePlots(cell string) (*int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", cell)
	}
	if v < 0 || v != math.Trunc(v) {
		return nil, fmt.Errorf("%q is not a non-negative integer", cell)
	}
	plots := int(v)
	return &plots, nil
}
