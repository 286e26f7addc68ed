package llm

import (
	"strings"

	"github.com/okian/carta/internal/domain/model"
	"github.com/okian/carta/internal/domain/types"
)

const persona = "Transmites con fidelidad interpretaciones astrológicas ya escritas. " +
	"Usa solo la información proporcionada, sin añadir conocimiento propio ni inventar. " +
	"Escribe en segunda persona con un tono cálido, directo y evolutivo, conservando el vocabulario del texto fuente."

const secondPerson = "Instrucción adicional: Dirígete directamente a la persona usando la segunda persona singular (Tú)."

const tropicalBrief = "Eres un astrólogo experto en cartas natales tropicales. " +
	"Re-escribe las interpretaciones individuales (separadas por '###') como un informe narrativo unificado y detallado. " +
	"La carta tropical describe la personalidad, el carácter y la vida cotidiana.\n" +
	"Reglas:\n" +
	"1. Incluye cada detalle: planetas en signo con sus grados, planetas en casa, cúspides, aspectos con su tipo y planetas retrógrados.\n" +
	"2. No resumas; conserva los matices de cada interpretación.\n" +
	"3. Conecta las ideas por temas con transiciones suaves.\n" +
	"4. Responde exclusivamente en español."

const draconicBrief = "Eres un astrólogo experto en cartas natales dracónicas. " +
	"Re-escribe las interpretaciones individuales (separadas por '###') como un informe narrativo unificado y detallado. " +
	"La carta dracónica expresa condicionamientos profundos que se manifiestan a través de los planetas y casas trópicos, " +
	"y debe leerse en relación con la carta trópica.\n" +
	"Reglas:\n" +
	"1. Incluye cada detalle proporcionado: Sol, Luna y Ascendente dracónicos, superposiciones de casas y contactos entre planetas dracónicos y trópicos.\n" +
	"2. Interpreta solo los elementos presentes; no inventes.\n" +
	"3. Evita el determinismo y mantén un tono revelador y accesible.\n" +
	"4. Responde exclusivamente en español."

const itemBrief = "Re-escribe la siguiente interpretación astrológica sin cambiar su contenido, " +
	"dirigida a la persona. Devuelve solo el texto re-escrito."

// GenderInstruction returns the grammatical gender instruction for gender,
// or "" when it is neither femenino nor masculino.
func GenderInstruction(gender string) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "femenino":
		return "Instrucción adicional: Redacta usando el género gramatical femenino."
	case "masculino":
		return "Instrucción adicional: Redacta usando el género gramatical masculino."
	}
	return ""
}

func instructions(gender string, brief string) string {
	parts := []string{}
	if g := GenderInstruction(gender); g != "" {
		parts = append(parts, g)
	}
	parts = append(parts, secondPerson, persona, brief)
	return strings.Join(parts, "\n")
}

// Compose joins items as "### title" sections separated by blank lines.
func Compose(items []types.Interpretation) string {
	sections := make([]string, 0, len(items))
	for _, it := range items {
		sections = append(sections, "### "+it.Title+"\n"+it.Text)
	}
	return strings.Join(sections, "\n\n")
}

// NarrativePrompt builds the whole-report prompt for chart type ct.
func NarrativePrompt(ct model.ChartType, gender string, items []types.Interpretation) Prompt {
	brief := tropicalBrief
	if ct == model.Draconic {
		brief = draconicBrief
	}
	return Prompt{Instructions: instructions(gender, brief), Body: Compose(items)}
}

// ItemPrompt builds the prompt rewriting a single item's text.
func ItemPrompt(gender string, it types.Interpretation) Prompt {
	return Prompt{
		Instructions: instructions(gender, itemBrief) + "\nTítulo: " + it.Title,
		Body:         it.Text,
	}
}
