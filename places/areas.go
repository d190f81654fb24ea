// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/platemap/platemap/utils/textutils"
)

var (
	errAreaNotFound = errors.New("area not found")
	zipHintPattern  = regexp.MustCompile(`^\d{5}$`)
)

// Area is a named geographic search target: the label under which found
// restaurants are filed, the free-text query sent to the search API, and
// a ZIP fallback for results whose address carries no usable ZIP code.
type Area struct {
	Name    string `yaml:"name"`
	Query   string `yaml:"query"`
	ZIPHint string `yaml:"zip_hint"`
}

// Validate checks that the area carries everything the collector needs.
func (a *Area) Validate() error {
	if a.Name == "" {
		return errors.New("area: name must not be empty")
	}

	if a.Query == "" {
		return fmt.Errorf("area %q: query must not be empty", a.Name)
	}

	if !zipHintPattern.MatchString(a.ZIPHint) {
		return fmt.Errorf("area %q: zip hint %q must be a 5-digit ZIP", a.Name, a.ZIPHint)
	}

	return nil
}

// Slug returns the filesystem-safe token used for the area's raw backup.
func (a *Area) Slug() string {
	return textutils.Slug(a.Name)
}

// Each iterates over all areas in declaration order, stopping at the
// first error.
func Each(areas []Area, fn func(Area) error) error {
	for _, a := range areas {
		if err := fn(a); err != nil {
			return err
		}
	}

	return nil
}

// Find returns the area whose name matches, ignoring case and accents.
func Find(areas []Area, name string) (*Area, error) {
	want := textutils.LowerASCIIFolding(name)

	for i := range areas {
		if textutils.LowerASCIIFolding(areas[i].Name) == want {
			return &areas[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %q", errAreaNotFound, name)
}

// DefaultAreas returns the built-in LA County coverage. The list is
// ordered roughly by region; the order also decides which duplicate of a
// restaurant found under two areas survives deduplication.
func DefaultAreas() []Area {
	q := func(city string) string {
		return fmt.Sprintf("restaurants in %s, CA", city)
	}

	return []Area{
		// LA city core
		{Name: "Beverly Hills", Query: q("Beverly Hills"), ZIPHint: "90210"},
		{Name: "Santa Monica", Query: q("Santa Monica"), ZIPHint: "90401"},
		{Name: "Hollywood", Query: q("Hollywood"), ZIPHint: "90028"},
		{Name: "West Hollywood", Query: q("West Hollywood"), ZIPHint: "90069"},
		{Name: "Venice", Query: q("Venice"), ZIPHint: "90291"},
		{Name: "Downtown LA", Query: q("Downtown Los Angeles"), ZIPHint: "90015"},

		// San Fernando Valley
		{Name: "North Hollywood", Query: q("North Hollywood"), ZIPHint: "91601"},
		{Name: "Van Nuys", Query: q("Van Nuys"), ZIPHint: "91401"},
		{Name: "Sherman Oaks", Query: q("Sherman Oaks"), ZIPHint: "91403"},
		{Name: "Studio City", Query: q("Studio City"), ZIPHint: "91604"},
		{Name: "Encino", Query: q("Encino"), ZIPHint: "91316"},
		{Name: "Tarzana", Query: q("Tarzana"), ZIPHint: "91356"},
		{Name: "Woodland Hills", Query: q("Woodland Hills"), ZIPHint: "91364"},
		{Name: "Canoga Park", Query: q("Canoga Park"), ZIPHint: "91303"},
		{Name: "Reseda", Query: q("Reseda"), ZIPHint: "91335"},
		{Name: "Northridge", Query: q("Northridge"), ZIPHint: "91324"},
		{Name: "Granada Hills", Query: q("Granada Hills"), ZIPHint: "91344"},
		{Name: "Chatsworth", Query: q("Chatsworth"), ZIPHint: "91311"},
		{Name: "Porter Ranch", Query: q("Porter Ranch"), ZIPHint: "91326"},

		// Westside
		{Name: "Brentwood", Query: q("Brentwood"), ZIPHint: "90049"},
		{Name: "Westwood", Query: q("Westwood"), ZIPHint: "90024"},
		{Name: "Pacific Palisades", Query: q("Pacific Palisades"), ZIPHint: "90272"},
		{Name: "Malibu", Query: q("Malibu"), ZIPHint: "90265"},
		{Name: "Manhattan Beach", Query: q("Manhattan Beach"), ZIPHint: "90266"},
		{Name: "Redondo Beach", Query: q("Redondo Beach"), ZIPHint: "90277"},
		{Name: "Hermosa Beach", Query: q("Hermosa Beach"), ZIPHint: "90254"},

		// South Bay
		{Name: "Torrance", Query: q("Torrance"), ZIPHint: "90501"},
		{Name: "Carson", Query: q("Carson"), ZIPHint: "90745"},
		{Name: "Gardena", Query: q("Gardena"), ZIPHint: "90247"},
		{Name: "Hawthorne", Query: q("Hawthorne"), ZIPHint: "90250"},
		{Name: "Lawndale", Query: q("Lawndale"), ZIPHint: "90260"},
		{Name: "Lomita", Query: q("Lomita"), ZIPHint: "90717"},
		{Name: "Palos Verdes", Query: q("Palos Verdes"), ZIPHint: "90274"},

		// San Gabriel Valley
		{Name: "Pasadena", Query: q("Pasadena"), ZIPHint: "91101"},
		{Name: "Alhambra", Query: q("Alhambra"), ZIPHint: "91801"},
		{Name: "Arcadia", Query: q("Arcadia"), ZIPHint: "91006"},
		{Name: "Monrovia", Query: q("Monrovia"), ZIPHint: "91016"},
		{Name: "Azusa", Query: q("Azusa"), ZIPHint: "91702"},
		{Name: "Covina", Query: q("Covina"), ZIPHint: "91722"},
		{Name: "West Covina", Query: q("West Covina"), ZIPHint: "91790"},
		{Name: "Pomona", Query: q("Pomona"), ZIPHint: "91766"},
		{Name: "Claremont", Query: q("Claremont"), ZIPHint: "91711"},
		{Name: "La Verne", Query: q("La Verne"), ZIPHint: "91750"},
		{Name: "San Dimas", Query: q("San Dimas"), ZIPHint: "91773"},
		{Name: "Diamond Bar", Query: q("Diamond Bar"), ZIPHint: "91765"},
		{Name: "Walnut", Query: q("Walnut"), ZIPHint: "91789"},
		{Name: "Monterey Park", Query: q("Monterey Park"), ZIPHint: "91754"},
		{Name: "San Gabriel", Query: q("San Gabriel"), ZIPHint: "91776"},
		{Name: "Rosemead", Query: q("Rosemead"), ZIPHint: "91770"},
		{Name: "El Monte", Query: q("El Monte"), ZIPHint: "91731"},
		{Name: "Baldwin Park", Query: q("Baldwin Park"), ZIPHint: "91706"},
		{Name: "Temple City", Query: q("Temple City"), ZIPHint: "91780"},
		{Name: "San Marino", Query: q("San Marino"), ZIPHint: "91108"},

		// East LA and southeast cities
		{Name: "Burbank", Query: q("Burbank"), ZIPHint: "91502"},
		{Name: "Glendale", Query: q("Glendale"), ZIPHint: "91201"},
		{Name: "Long Beach", Query: q("Long Beach"), ZIPHint: "90802"},
		{Name: "Culver City", Query: q("Culver City"), ZIPHint: "90232"},
		{Name: "Inglewood", Query: q("Inglewood"), ZIPHint: "90301"},
		{Name: "El Segundo", Query: q("El Segundo"), ZIPHint: "90245"},
		{Name: "Montebello", Query: q("Montebello"), ZIPHint: "90640"},
		{Name: "Pico Rivera", Query: q("Pico Rivera"), ZIPHint: "90660"},
		{Name: "Downey", Query: q("Downey"), ZIPHint: "90241"},
		{Name: "Norwalk", Query: q("Norwalk"), ZIPHint: "90650"},
		{Name: "Whittier", Query: q("Whittier"), ZIPHint: "90601"},
		{Name: "Cerritos", Query: q("Cerritos"), ZIPHint: "90703"},
		{Name: "Artesia", Query: q("Artesia"), ZIPHint: "90701"},
		{Name: "Bellflower", Query: q("Bellflower"), ZIPHint: "90706"},
		{Name: "Lakewood", Query: q("Lakewood"), ZIPHint: "90712"},
		{Name: "Paramount", Query: q("Paramount"), ZIPHint: "90723"},
		{Name: "Lynwood", Query: q("Lynwood"), ZIPHint: "90262"},
		{Name: "South Gate", Query: q("South Gate"), ZIPHint: "90280"},
		{Name: "Huntington Park", Query: q("Huntington Park"), ZIPHint: "90255"},
		{Name: "Bell", Query: q("Bell"), ZIPHint: "90201"},
		{Name: "Bell Gardens", Query: q("Bell Gardens"), ZIPHint: "90201"},
		{Name: "Cudahy", Query: q("Cudahy"), ZIPHint: "90201"},
		{Name: "Maywood", Query: q("Maywood"), ZIPHint: "90270"},
		{Name: "Commerce", Query: q("Commerce"), ZIPHint: "90040"},
		{Name: "Vernon", Query: q("Vernon"), ZIPHint: "90058"},
		{Name: "Signal Hill", Query: q("Signal Hill"), ZIPHint: "90755"},

		// Antelope Valley
		{Name: "Lancaster", Query: q("Lancaster"), ZIPHint: "93534"},
		{Name: "Palmdale", Query: q("Palmdale"), ZIPHint: "93550"},

		// Santa Clarita Valley
		{Name: "Santa Clarita", Query: q("Santa Clarita"), ZIPHint: "91350"},
		{Name: "Valencia", Query: q("Valencia"), ZIPHint: "91355"},
		{Name: "Newhall", Query: q("Newhall"), ZIPHint: "91321"},
		{Name: "Canyon Country", Query: q("Canyon Country"), ZIPHint: "91387"},
		{Name: "Castaic", Query: q("Castaic"), ZIPHint: "91384"},

		// Foothill communities
		{Name: "Altadena", Query: q("Altadena"), ZIPHint: "91001"},
		{Name: "La Canada", Query: q("La Canada Flintridge"), ZIPHint: "91011"},
		{Name: "Sierra Madre", Query: q("Sierra Madre"), ZIPHint: "91024"},
		{Name: "Duarte", Query: q("Duarte"), ZIPHint: "91010"},

		// West valley edge
		{Name: "Calabasas", Query: q("Calabasas"), ZIPHint: "91302"},
		{Name: "Agoura Hills", Query: q("Agoura Hills"), ZIPHint: "91301"},
		{Name: "Hidden Hills", Query: q("Hidden Hills"), ZIPHint: "91302"},
	}
}
