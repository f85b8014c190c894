// Package catalog contiene la lógica de emparejamiento entre etiquetas de texto
// libre (reconocidas por la IA o escritas a mano) y los productos del catálogo.
//
// Hay dos políticas con nombre propio y NO deben mezclarse:
//   - Match: multinivel difuso, para el punto de venta (la etiqueta viene de la IA).
//   - ExactName: igualdad de nombre normalizado, para conciliar entradas de
//     mercancía (los nombres ya fueron revisados por el usuario).
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
)

// Puntajes por nivel. Cada nivel domina estrictamente al siguiente: el nivel 3
// suma 1 por token coincidente y jamás alcanza al nivel 2.
const (
	scoreExact     = 1 << 20
	scoreSubstring = 1 << 10
)

// Normalize aplica NFKC, minúsculas y recorte de espacios. Es la forma canónica
// para comparar nombres de producto (los nombres tailandeses/latinos mezclan
// anchos de caracteres que NFKC unifica).
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}

// foldKey elimina todo lo que no sea letra o dígito de la forma normalizada.
// "Coca-Cola 1.25L" y "coca cola 1.25l" comparten foldKey: el nivel exacto es
// insensible a mayúsculas, espacios y puntuación.
func foldKey(s string) string {
	var b strings.Builder
	for _, r := range Normalize(s) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func tokenize(s string) []string {
	return strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// score puntúa un candidato contra la etiqueta ya normalizada.
func score(normLabel, foldLabel string, labelTokens []string, p entity.Product) int {
	normName := Normalize(p.Name)
	if normName == "" {
		return 0
	}
	if foldKey(p.Name) == foldLabel {
		return scoreExact
	}
	if strings.Contains(normLabel, normName) || strings.Contains(normName, normLabel) {
		// Dentro del nivel, gana el solapamiento más largo.
		n := len(normName)
		if len(normLabel) > n {
			n = len(normLabel)
		}
		return scoreSubstring + n
	}
	total := 0
	for _, lt := range labelTokens {
		for _, nt := range tokenize(p.Name) {
			if strings.Contains(lt, nt) || strings.Contains(nt, lt) {
				total++
				break
			}
		}
	}
	return total
}

// Match devuelve el producto del catálogo que mejor empareja con la etiqueta, o
// nil si ningún candidato puntúa por encima de cero.
//
// Niveles: exacto (tras normalizar y plegar puntuación) > subcadena en cualquier
// dirección > solapamiento de tokens (aditivo). En caso de empate gana el que
// aparece primero en el orden del catálogo; el desempate es estable.
// Función pura: no toca red ni estado.
func Match(label string, products []entity.Product) *entity.Product {
	normLabel := Normalize(label)
	if normLabel == "" {
		return nil
	}
	foldLabel := foldKey(label)
	labelTokens := tokenize(label)

	best := -1
	bestScore := 0
	for i, p := range products {
		if s := score(normLabel, foldLabel, labelTokens, p); s > bestScore {
			best = i
			bestScore = s
		}
	}
	if best < 0 {
		return nil
	}
	return &products[best]
}

// ExactName busca el producto cuyo nombre normalizado es idéntico a la etiqueta.
// Es la política de conciliación de entradas: literal a propósito, porque los
// nombres de las líneas ya pasaron por la revisión del usuario.
func ExactName(label string, products []entity.Product) *entity.Product {
	normLabel := Normalize(label)
	if normLabel == "" {
		return nil
	}
	for i, p := range products {
		if Normalize(p.Name) == normLabel {
			return &products[i]
		}
	}
	return nil
}
