package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Location,FloodScore,HospitalScore,CollegeScore,FactoryScore,CrimeScore,ConnectivityScore,MallScore,PowerScore,ServicesScore,CostScore,FloodRisk,AvailablePlots
T. Nagar,6,8,7,2,3,9,9,8,8,6,Medium,4
Adyar,5,9,8,1,2,8,7,8,9,8,High,
Ennore,3,4,3,8,5,4,2,6,4,2,Low,30
`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	tn := records[0]
	assert.Equal(t, "T. Nagar", tn.Location)
	assert.Equal(t, 6.0, tn.CostScore)
	assert.Equal(t, 3.0, tn.CrimeScore)
	assert.Equal(t, "Medium", tn.FloodRisk)
	require.NotNil(t, tn.AvailablePlots)
	assert.Equal(t, 4, *tn.AvailablePlots)

	assert.Nil(t, records[1].AvailablePlots, "empty plots cell is absent")
	assert.Equal(t, 30, *records[2].AvailablePlots)
}

func TestParseSkipsBlankAndDuplicateLocations(t *testing.T) {
	src := "Location,CostScore\nAdyar,5\n,7\nAdyar,9\nGuindy,4\n"

	records, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 5.0, records[0].CostScore, "first duplicate row wins")
	assert.Equal(t, "Guindy", records[1].Location)
}

func TestParseDuplicateLocationsIgnoreCase(t *testing.T) {
	src := "Location,CostScore\nAdyar,5\nADYAR,9\nadyar,7\n"

	records, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Adyar", records[0].Location)
	assert.Equal(t, 5.0, records[0].CostScore)
}

func TestParseMissingColumnsDefaultToZero(t *testing.T) {
	records, err := Parse(strings.NewReader("Location,CostScore\nAdyar,\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Zero(t, records[0].CostScore)
	assert.Zero(t, records[0].FloodScore)
	assert.Nil(t, records[0].AvailablePlots)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"no location column", "Name,CostScore\nAdyar,5\n"},
		{"non numeric score", "Location,CostScore\nAdyar,cheap\n"},
		{"negative plots", "Location,AvailablePlots\nAdyar,-1\n"},
		{"fractional plots", "Location,AvailablePlots\nAdyar,2.5\n"},
		{"ragged row", "Location,CostScore\nAdyar,5,7\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
		})
	}
}

func TestParseHeaderWithBOM(t *testing.T) {
	records, err := Parse(strings.NewReader("\ufeffLocation , CostScore\nAdyar,5\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 5.0, records[0].CostScore)
}

func TestStoreNotLoadedUntilReady(t *testing.T) {
	s := &Store{ready: make(chan struct{})}

	_, err := s.Records()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.Equal(t, StatusLoading, s.Status())

	s.finish([]models.Neighborhood{{Location: "Adyar"}}, nil)

	records, err := s.Records()
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, StatusReady, s.Status())
}

func TestStoreReadyClosedOnFinish(t *testing.T) {
	s := &Store{ready: make(chan struct{})}

	select {
	case <-s.Ready():
		t.Fatal("ready closed before load finished")
	default:
	}

	s.finish(nil, errors.New("boom"))

	select {
	case <-s.Ready():
	default:
		t.Fatal("ready not closed after failed load")
	}
	assert.Equal(t, StatusFailed, s.Status())
}

func TestLoadAsync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	s := LoadAsync(context.Background(), path)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))

	locations, err := s.Locations()
	require.NoError(t, err)
	assert.Equal(t, []string{"Adyar", "Ennore", "T. Nagar"}, locations)
}

func TestLoadAsyncMissingFileStaysNotLoaded(t *testing.T) {
	s := LoadAsync(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.Error(t, s.Wait(ctx))

	_, err := s.Records()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.Equal(t, StatusFailed, s.Status())
	assert.Error(t, s.Err())
}
