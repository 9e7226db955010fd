package service

import (
	"regexp"
	"strconv"
)

var firstIntRe = regexp.MustCompile(`\d+`)

// parseFirstScore extrae el primer token numerico de la respuesta del LLM.
// El modelo recibe la instruccion de contestar solo con digitos, pero no
// asumimos salida bien formada: sin match devolvemos ok=false y el caller
// aplica su fallback.
func parseFirstScore(raw string) (int, bool) {
	match := firstIntRe.FindString(raw)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}
