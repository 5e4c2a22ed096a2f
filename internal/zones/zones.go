// Package zones сопоставляет районы Ченнаи географическим зонам.
package zones

import (
	"slices"

	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
)

// chennaiZones содержит статическую таблицу районов и зон.
var chennaiZones = map[string]models.Zone{
	"Adambakkam":               models.ZoneSouth,
	"Adyar":                    models.ZoneSouth,
	"Alandur":                  models.ZoneSouth,
	"Alapakkam":                models.ZoneWest,
	"Alwarpet":                 models.ZoneCentral,
	"Alwarthirunagar":          models.ZoneWest,
	"Ambattur":                 models.ZoneWest,
	"Aminjikarai":              models.ZoneCentral,
	"Anna Nagar":               models.ZoneCentral,
	"Annanur":                  models.ZoneWest,
	"Arumbakkam":               models.ZoneCentral,
	"Ashok Nagar":              models.ZoneCentral,
	"Avadi":                    models.ZoneWest,
	"Ayanavaram":               models.ZoneCentral,
	"Beemannapettai":           models.ZoneNorth,
	"Besant Nagar":             models.ZoneSouth,
	"Basin Bridge":             models.ZoneNorth,
	"Chepauk":                  models.ZoneCentral,
	"Chetput":                  models.ZoneCentral,
	"Chintadripet":             models.ZoneCentral,
	"Chitlapakkam":             models.ZoneSouth,
	"Choolai":                  models.ZoneCentral,
	"Choolaimedu":              models.ZoneCentral,
	"Chrompet":                 models.ZoneSouth,
	"Egmore":                   models.ZoneCentral,
	"Ekkaduthangal":            models.ZoneSouth,
	"Eranavur":                 models.ZoneNorth,
	"Ennore":                   models.ZoneNorth,
	"Foreshore Estate":         models.ZoneCentral,
	"Fort St. George":          models.ZoneNorth,
	"George Town":              models.ZoneNorth,
	"Gopalapuram":              models.ZoneCentral,
	"Government Estate":        models.ZoneCentral,
	"Guindy":                   models.ZoneSouth,
	"Guduvancheri":             models.ZoneSouth,
	"IIT Madras":               models.ZoneSouth,
	"Injambakkam":              models.ZoneEastCoast,
	"ICF":                      models.ZoneCentral,
	"Iyyapanthangal":           models.ZoneWest,
	"Jafferkhanpet":            models.ZoneSouth,
	"Kadambathur":              models.ZoneWest,
	"Karapakkam":               models.ZoneEastCoast,
	"Kattivakkam":              models.ZoneNorth,
	"Kattupakkam":              models.ZoneWest,
	"Kazhipattur":              models.ZoneEastCoast,
	"K.K. Nagar":               models.ZoneCentral,
	"Keelkattalai":             models.ZoneSouth,
	"Kilpauk":                  models.ZoneCentral,
	"Kodambakkam":              models.ZoneCentral,
	"Kodungaiyur":              models.ZoneNorth,
	"Kolathur":                 models.ZoneNorth,
	"Korattur":                 models.ZoneWest,
	"Korukkupet":               models.ZoneNorth,
	"Kottivakkam":              models.ZoneEastCoast,
	"Kotturpuram":              models.ZoneCentral,
	"Kottur":                   models.ZoneCentral,
	"Kovur":                    models.ZoneWest,
	"Koyambedu":                models.ZoneWest,
	"Kundrathur":               models.ZoneWest,
	"Madhavaram":               models.ZoneNorth,
	"Madhavaram Milk Colony":   models.ZoneNorth,
	"Madipakkam":               models.ZoneSouth,
	"Madambakkam":              models.ZoneSouth,
	"Maduravoyal":              models.ZoneWest,
	"Manali":                   models.ZoneNorth,
	"Manali New Town":          models.ZoneNorth,
	"Manapakkam":               models.ZoneWest,
	"Mandaveli":                models.ZoneCentral,
	"Mangadu":                  models.ZoneWest,
	"Mannadi":                  models.ZoneNorth,
	"Mathur":                   models.ZoneNorth,
	"Medavakkam":               models.ZoneSouth,
	"Meenambakkam":             models.ZoneSouth,
	"MGR Nagar":                models.ZoneCentral,
	"Minjur":                   models.ZoneNorth,
	"Mogappair":                models.ZoneWest,
	"MKB Nagar":                models.ZoneNorth,
	"Mount Road":               models.ZoneCentral,
	"Moolakadai":               models.ZoneNorth,
	"Moulivakkam":              models.ZoneWest,
	"Mugalivakkam":             models.ZoneWest,
	"Mudichur":                 models.ZoneSouth,
	"Mylapore":                 models.ZoneCentral,
	"Nandanam":                 models.ZoneCentral,
	"Nanganallur":              models.ZoneSouth,
	"Nanmangalam":              models.ZoneSouth,
	"Neelankarai":              models.ZoneEastCoast,
	"Nemilichery":              models.ZoneSouth,
	"Nesapakkam":               models.ZoneSouth,
	"Nolambur":                 models.ZoneWest,
	"Noombal":                  models.ZoneWest,
	"Nungambakkam":             models.ZoneCentral,
	"Otteri":                   models.ZoneCentral,
	"Padi":                     models.ZoneWest,
	"Pakkam":                   models.ZoneWest,
	"Palavakkam":               models.ZoneEastCoast,
	"Pallavaram":               models.ZoneSouth,
	"Pallikaranai":             models.ZoneSouth,
	"Pammal":                   models.ZoneSouth,
	"Park Town":                models.ZoneCentral,
	"Parry's Corner":           models.ZoneNorth,
	"Pattabiram":               models.ZoneWest,
	"Pattaravakkam":            models.ZoneWest,
	"Pazhavanthangal":          models.ZoneSouth,
	"Peerkankaranai":           models.ZoneSouth,
	"Perambur":                 models.ZoneNorth,
	"Peravallur":               models.ZoneNorth,
	"Perumbakkam":              models.ZoneSouth,
	"Perungalathur":            models.ZoneSouth,
	"Perungudi":                models.ZoneSouth,
	"Pozhichalur":              models.ZoneSouth,
	"Poonamallee":              models.ZoneWest,
	"Porur":                    models.ZoneWest,
	"Pudupet":                  models.ZoneCentral,
	"Pulianthope":              models.ZoneNorth,
	"Purasaiwalkam":            models.ZoneCentral,
	"Puthagaram":               models.ZoneNorth,
	"Puzhal":                   models.ZoneNorth,
	"Puzhuthivakkam-Ullagaram": models.ZoneSouth,
	"Raj Bhavan":               models.ZoneInstitutional,
	"Ramavaram":                models.ZoneWest,
	"Red Hills":                models.ZoneNorth,
	"Royapettah":               models.ZoneCentral,
	"Royapuram":                models.ZoneNorth,
	"Saidapet":                 models.ZoneCentral,
	"Saligramam":               models.ZoneCentral,
	"Santhome":                 models.ZoneCentral,
	"Sembakkam":                models.ZoneSouth,
	"Selaiyur":                 models.ZoneSouth,
	"Shenoy Nagar":             models.ZoneCentral,
	"Sholavaram":               models.ZoneNorth,
	"Sholinganallur":           models.ZoneEastCoast,
	"Sikkarayapuram":           models.ZoneWest,
	"Sowcarpet":                models.ZoneNorth,
	"St. Thomas Mount":         models.ZoneSouth,
	"Surapet":                  models.ZoneNorth,
	"Tambaram":                 models.ZoneSouth,
	"Teynampet":                models.ZoneCentral,
	"Tharamani":                models.ZoneEastCoast,
	"T. Nagar":                 models.ZoneCentral,
	"Thirumangalam":            models.ZoneCentral,
	"Thirumullaivoyal":         models.ZoneWest,
	"Thiruneermalai":           models.ZoneSouth,
	"Thiruninravur":            models.ZoneWest,
	"Thiruvanmiyur":            models.ZoneEastCoast,
	"Thiruvallur":              models.ZoneWest,
	"Tiruverkadu":              models.ZoneWest,
	"Thiruvotriyur":            models.ZoneNorth,
	"Thuraipakkam":             models.ZoneEastCoast,
	"Tirusulam":                models.ZoneSouth,
	"Tiruvallikeni":            models.ZoneCentral,
	"Tondiarpet":               models.ZoneNorth,
	"United India Colony":      models.ZoneCentral,
	"Vandalur":                 models.ZoneSouth,
	"Vadapalani":               models.ZoneCentral,
	"Valasaravakkam":           models.ZoneWest,
	"Vallalar Nagar":           models.ZoneNorth,
	"Vanagaram":                models.ZoneWest,
	"Velachery":                models.ZoneSouth,
	"Velappanchavadi":          models.ZoneWest,
	"Villivakkam":              models.ZoneCentral,
	"Virugambakkam":            models.ZoneCentral,
	"Vyasarpadi":               models.ZoneNorth,
	"Washermanpet":             models.ZoneNorth,
	"West Mambalam":            models.ZoneCentral,
}

// zoneOrder задает порядок вывода известных зон.
var zoneOrder = []models.Zone{
	models.ZoneCentral,
	models.ZoneNorth,
	models.ZoneSouth,
	models.ZoneWest,
	models.ZoneEastCoast,
	models.ZoneInstitutional,
}

// Classifier определяет зону района по неизменяемой таблице.
// Безопасен для конкурентного использования.
type Classifier struct {
	table map[string]models.Zone
	zones []models.Zone
}

// NewClassifier создает классификатор по копии переданной таблицы.
func NewClassifier(table map[string]models.Zone) *Classifier {
	cp := make(map[string]models.Zone, len(table))
	for area, zone := range table {
		cp[area] = zone
	}
	return &Classifier{table: cp, zones: collectZones(cp)}
}

// Chennai возвращает классификатор со встроенной таблицей районов Ченнаи.
func Chennai() *Classifier {
	return NewClassifier(chennaiZones)
}

// ZoneOf возвращает зону района. Поиск чувствителен к регистру.
func (c *Classifier) ZoneOf(area string) (models.Zone, bool) {
	zone, ok := c.table[area]
	return zone, ok
}

// Zones возвращает зоны, встречающиеся в таблице: сначала известные
// в фиксированном порядке, затем остальные по алфавиту.
func (c *Classifier) Zones() []models.Zone {
	return slices.Clone(c.zones)
}

func collectZones(table map[string]models.Zone) []models.Zone {
	present := make(map[models.Zone]bool)
	for _, zone := range table {
		present[zone] = true
	}

	zones := make([]models.Zone, 0, len(present))
	for _, zone := range zoneOrder {
		if present[zone] {
			zones = append(zones, zone)
			delete(present, zone)
		}
	}

	extra := make([]models.Zone, 0, len(present))
	for zone := range present {
		extra = append(extra, zone)
	}
	slices.Sort(extra)
	return append(zones, extra...)
}
