package zones

import (
	"testing"

	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestChennaiZoneOf(t *testing.T) {
	c := Chennai()

	tests := []struct {
		area   string
		want   models.Zone
		wantOK bool
	}{
		{"T. Nagar", models.ZoneCentral, true},
		{"Adyar", models.ZoneSouth, true},
		{"Ennore", models.ZoneNorth, true},
		{"Porur", models.ZoneWest, true},
		{"Sholinganallur", models.ZoneEastCoast, true},
		{"Raj Bhavan", models.ZoneInstitutional, true},
		{"t. nagar", "", false},
		{"Atlantis", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.area, func(t *testing.T) {
			zone, ok := c.ZoneOf(tt.area)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, zone)
		})
	}
}

func TestNewClassifierCopiesTable(t *testing.T) {
	table := map[string]models.Zone{"A": models.ZoneNorth}
	c := NewClassifier(table)
	table["A"] = models.ZoneSouth

	zone, ok := c.ZoneOf("A")
	assert.True(t, ok)
	assert.Equal(t, models.ZoneNorth, zone)
}

func TestChennaiTableUsesKnownZones(t *testing.T) {
	known := make(map[models.Zone]bool)
	for _, z := range zoneOrder {
		known[z] = true
	}
	for area, zone := range chennaiZones {
		assert.Truef(t, known[zone], "area %s has unknown zone %s", area, zone)
	}
	assert.Equal(t, zoneOrder, Chennai().Zones())
}

func TestZonesFollowTable(t *testing.T) {
	c := NewClassifier(map[string]models.Zone{
		"A": models.ZoneWest,
		"B": "Outer Ring",
		"C": models.ZoneCentral,
		"D": "Airport",
		"E": models.ZoneWest,
	})

	assert.Equal(t, []models.Zone{models.ZoneCentral, models.ZoneWest, "Airport", "Outer Ring"}, c.Zones())
	assert.Empty(t, NewClassifier(nil).Zones())
}
