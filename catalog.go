package globetour

import (
	"fmt"

	"github.com/teranos/globetour/glitch"
)

// Stop is one geographic point-of-interest record in the tour catalog.
// Stops are created once at startup and never mutated.
type Stop struct {
	Name        string  `mapstructure:"name"`
	City        string  `mapstructure:"city"`
	Lat         float64 `mapstructure:"lat"`
	Lon         float64 `mapstructure:"lon"`
	Description string  `mapstructure:"description"`
	Meta        string  `mapstructure:"meta"`
}

// ActivationText is the trio of strings published when a stop becomes
// active: a short location title, a longer description, and a
// category/tag line. External UI binds these directly to text content.
type ActivationText struct {
	Title       string
	Description string
	Meta        string
}

// Text returns the overlay strings for this stop.
func (s Stop) Text() ActivationText {
	return ActivationText{
		Title:       fmt.Sprintf("%s · %s", s.Name, s.City),
		Description: s.Description,
		Meta:        s.Meta,
	}
}

// Catalog is the fixed ordered sequence of tour stops, indexed 0..N-1.
type Catalog []Stop

// DefaultCatalog returns the five reference stops the tour ships with.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			Name:        "Shibuya Crossing",
			City:        "Tokyo",
			Lat:         35.6595,
			Lon:         139.7005,
			Description: "Up to three thousand people cross at once when the lights change, a tide of umbrellas and neon reflected in the wet asphalt.",
			Meta:        "01 — Urban rhythm",
		},
		{
			Name:        "Blue Lagoon",
			City:        "Reykjavík",
			Lat:         63.8804,
			Lon:         -22.4495,
			Description: "A milky geothermal pool steaming against black lava fields, fed by the runoff of the Svartsengi power station.",
			Meta:        "02 — Geothermal",
		},
		{
			Name:        "Nairobi National Park",
			City:        "Nairobi",
			Lat:         -1.3733,
			Lon:         36.8581,
			Description: "Lions and rhinos graze against a skyline of office towers, the only wilderness of its kind bordering a capital city.",
			Meta:        "03 — Wild frontier",
		},
		{
			Name:        "Machu Picchu",
			City:        "Cusco",
			Lat:         -13.1631,
			Lon:         -72.5450,
			Description: "Terraces carved into a granite ridge at 2,430 metres, hidden from the valley floor and from history for four centuries.",
			Meta:        "04 — Lost citadel",
		},
		{
			Name:        "Sydney Opera House",
			City:        "Sydney",
			Lat:         -33.8568,
			Lon:         151.2153,
			Description: "A million Swedish tiles over precast concrete shells, sails frozen mid-billow above the harbour.",
			Meta:        "05 — Harbour icon",
		},
	}
}

// Sanitize clamps out-of-range coordinates into valid latitude and
// longitude ranges, recording a fault for each correction.
//
// The catalog is a caller-guaranteed invariant, so this is deliberately
// forgiving: a bad coordinate is clamped rather than rejected, the tour
// plays on, and the fault log tells the author what to fix.
func (c Catalog) Sanitize(faults *glitch.Handler) Catalog {
	out := make(Catalog, len(c))
	for i, s := range c {
		lat := Clamp(s.Lat, -90, 90)
		lon := Clamp(s.Lon, -180, 180)
		if (lat != s.Lat || lon != s.Lon) && faults != nil {
			faults.Record(glitch.NewFault("coordinate",
				fmt.Sprintf("stop %q has out-of-range coordinates, clamped", s.Name),
				glitch.Context{"index": i, "lat": s.Lat, "lon": s.Lon}))
		}
		s.Lat, s.Lon = lat, lon
		out[i] = s
	}
	return out
}
