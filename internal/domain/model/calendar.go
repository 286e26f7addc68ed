package model

// Calendar event types sent by the calendar service.
const (
	CalendarAspect         = "Aspecto"
	CalendarNewMoon        = "Luna Nueva"
	CalendarFullMoon       = "Luna Llena"
	CalendarSolarEclipse   = "Eclipse Solar"
	CalendarLunarEclipse   = "Eclipse Lunar"
	CalendarProgressedMoon = "Luna Progresada"
)

// CalendarEvent is a dated sky event relative to a natal chart.
type CalendarEvent struct {
	Type        string `json:"tipo_evento" validate:"required"`
	Description string `json:"descripcion"`
	Date        string `json:"fecha,omitempty"`
	Planet1     string `json:"planeta1,omitempty"`
	Planet2     string `json:"planeta2,omitempty"`
	Aspect      string `json:"tipo_aspecto,omitempty"`
	Sign        string `json:"signo,omitempty"`
	NatalHouse  int    `json:"casa_natal,omitempty"`
}
