// Package ingredient limpia las etiquetas del detector (o las que manda el usuario)
// antes de que lleguen al inventario o a la búsqueda de recetas.
package ingredient

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Términos que el modelo detecta pero no son alimentos.
var blocklist = map[string]struct{}{
	"bottle":    {},
	"container": {},
	"packet":    {},
	"box":       {},
}

// Reescrituras para que la API de recetas encuentre coincidencias.
var aliases = map[string]string{
	"bell pepper": "red bell pepper",
	"capsicum":    "green bell pepper",
	"tomatoes":    "tomato",
	"potatoes":    "potato",
	"chilies":     "chili pepper",
	"paneer":      "cottage cheese",
	"curd":        "yogurt",
}

// Normalize recorta y pasa a minúsculas cada etiqueta, descarta vacías y bloqueadas,
// aplica alias y elimina duplicados conservando el primer orden de aparición.
// Es idempotente: Normalize(Normalize(x)) == Normalize(x).
func Normalize(labels []string) []string {
	// cases.Caser guarda estado; uno por llamada.
	lower := cases.Lower(language.Und)

	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, raw := range labels {
		label := strings.TrimSpace(lower.String(norm.NFKC.String(raw)))
		if label == "" {
			continue
		}
		if _, blocked := blocklist[label]; blocked {
			continue
		}
		if alias, ok := aliases[label]; ok {
			label = alias
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}
