// Package types contains the records handed to the narrative rewriter and
// the HTTP layer.
package types

// Interpretation is one licensed and resolved chart fact.
type Interpretation struct {
	Title string `json:"titulo"`
	Kind  string `json:"tipo"`
	Text  string `json:"interpretacion"`
	// Key is the knowledge base key that resolved, empty when a complex
	// pattern had no text.
	Key string `json:"clave,omitempty"`

	Planet  string `json:"planeta,omitempty"`
	Sign    string `json:"signo,omitempty"`
	House   string `json:"casa,omitempty"`
	Degrees string `json:"grados,omitempty"`
	Aspect  string `json:"aspecto,omitempty"`
	Planet1 string `json:"planeta1,omitempty"`
	Planet2 string `json:"planeta2,omitempty"`
	// PlanetDraconic and PlanetTropical carry the two sides of a
	// draconic to tropical cross aspect.
	PlanetDraconic string `json:"planeta_draconico,omitempty"`
	PlanetTropical string `json:"planeta_tropical,omitempty"`
	Angle          string `json:"angulo,omitempty"`
	DraconicHouse  int    `json:"casa_draconica,omitempty"`
	TropicalHouse  int    `json:"casa_tropical,omitempty"`
	Orb            string `json:"orbe,omitempty"`
	Rule           string `json:"regla,omitempty"`
}

// Report is a full chart interpretation.
type Report struct {
	Name           string           `json:"nombre"`
	ChartType      string           `json:"tipo"`
	Narrative      string           `json:"interpretacion_narrativa"`
	Items          []Interpretation `json:"interpretaciones_individuales"`
	ElapsedSeconds float64          `json:"tiempo_generacion"`
}

// CalendarResult is the interpretation of one calendar event.
type CalendarResult struct {
	Description string `json:"descripcion"`
	Text        string `json:"interpretacion"`
	Matched     bool   `json:"coincidencia"`
	Query       string `json:"consulta"`
}
