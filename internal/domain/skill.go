package domain

import "fmt"

// Skill identifica una de las siete dimensiones de competencia.
// Se usa un enum cerrado internamente; los nombres string solo viven
// en el borde de serializacion para evitar typos silenciosos.
type Skill int

const (
	SkillStrategicPlanning Skill = iota
	SkillProblemFraming
	SkillInvolvement
	SkillDialogue
	SkillExecution
	SkillCompletion
	SkillHumility
)

// AllSkills define el orden canonico de las dimensiones.
// Los desempates de "mejor/peor dimension" dependen de este orden.
var AllSkills = []Skill{
	SkillStrategicPlanning,
	SkillProblemFraming,
	SkillInvolvement,
	SkillDialogue,
	SkillExecution,
	SkillCompletion,
	SkillHumility,
}

var skillNames = map[Skill]string{
	SkillStrategicPlanning: "strategic_planning",
	SkillProblemFraming:    "problem_framing",
	SkillInvolvement:       "involvement",
	SkillDialogue:          "dialogue",
	SkillExecution:         "execution",
	SkillCompletion:        "completion",
	SkillHumility:          "humility",
}

var skillDisplayNames = map[Skill]string{
	SkillStrategicPlanning: "planificacion estrategica",
	SkillProblemFraming:    "definicion de problemas",
	SkillInvolvement:       "involucramiento",
	SkillDialogue:          "dialogo",
	SkillExecution:         "ejecucion",
	SkillCompletion:        "cumplimiento",
	SkillHumility:          "humildad",
}

func (s Skill) String() string {
	if name, ok := skillNames[s]; ok {
		return name
	}
	return fmt.Sprintf("skill(%d)", int(s))
}

// DisplayName devuelve el nombre legible usado en comentarios y consejos.
func (s Skill) DisplayName() string {
	if name, ok := skillDisplayNames[s]; ok {
		return name
	}
	return s.String()
}

// ParseSkill convierte un nombre serializado en Skill.
func ParseSkill(name string) (Skill, error) {
	for skill, n := range skillNames {
		if n == name {
			return skill, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSkill, name)
}

// SkillScores es el vector de competencias: exactamente siete
// dimensiones con valores en [0,100]. Es efimero; se construye
// completo en cada agregacion.
type SkillScores map[Skill]int

// ToNamed serializa el vector con claves string para persistencia y API.
func (s SkillScores) ToNamed() map[string]int {
	out := make(map[string]int, len(s))
	for skill, score := range s {
		out[skill.String()] = score
	}
	return out
}

// SkillScoresFromNamed valida y convierte un mapa con claves string.
// Falla ante dimensiones desconocidas o valores fuera de [0,100].
func SkillScoresFromNamed(named map[string]int) (SkillScores, error) {
	out := make(SkillScores, len(named))
	for name, score := range named {
		skill, err := ParseSkill(name)
		if err != nil {
			return nil, err
		}
		if score < 0 || score > 100 {
			return nil, fmt.Errorf("%w: %s=%d", ErrScoreOutOfRange, name, score)
		}
		out[skill] = score
	}
	return out, nil
}

// Vector devuelve los siete valores en orden canonico, util para la
// columna vector(7) de busqueda por similitud.
func (s SkillScores) Vector() []float32 {
	out := make([]float32, 0, len(AllSkills))
	for _, skill := range AllSkills {
		out = append(out, float32(s[skill]))
	}
	return out
}
