package catalog

import "encoding/json"

// DefaultSettings returns the settings a fresh installation starts with.
func DefaultSettings() Settings {
	return Settings{
		GameName:            "Alfred0 - Desafío Emprendedor",
		GameDescription:     "Un juego interactivo de emprendimiento donde los equipos enfrentan desafíos empresariales reales",
		ShowTokensToPlayers: false,
		TotalPhases:         5,
		TeamNameRequired:    true,
		AllowTeamNameChange: true,
		MaxTeamNameLength:   30,
		GameLanguages:       []string{"es", "en"},
		DefaultLanguage:     "es",
	}
}

// DefaultPhases returns the five scripted phases of the standard game.
func DefaultPhases() []Phase {
	return []Phase{
		{
			ID:          "phase-1",
			Title:       "Desafíos Mentales",
			Description: "Cronómetro de 3 minutos con anagramas y sopas de letras sobre emprendimiento",
			Kind:        KindTimedChallenge,
			TimeLimit:   180,
			IsActive:    true,
			Order:       1,
			Content:     json.RawMessage(`{"timerDuration":180,"challenges":["anagram","wordsearch"],"topics":["entrepreneurship"]}`),
		},
		{
			ID:          "phase-2",
			Title:       "Identificación de Problemas",
			Description: "Selección de desafíos empresariales con historias contextuales",
			Kind:        KindStorySelection,
			IsActive:    true,
			Order:       2,
			Content: json.RawMessage(`{"challenges":[` +
				`{"id":"tech-seniors","title":"Tecnología para Adultos Mayores","story":"María, de 68 años, quiere comunicarse con su familia..."},` +
				`{"id":"fast-fashion","title":"Fast Fashion y Zonas de Desechos","story":"En Ghana, montañas de ropa usada..."},` +
				`{"id":"water-agriculture","title":"Sustentabilidad del Agua en Agricultura","story":"Los agricultores de California enfrentan..."}]}`),
		},
		{
			ID:          "phase-3",
			Title:       "Estrategia de Mercado",
			Description: "Preguntas sobre análisis de mercado y estrategias empresariales",
			Kind:        KindMultipleChoice,
			IsActive:    true,
			Order:       3,
			Questions: []Question{{
				ID:   "market-1",
				Text: "¿Cuál es el primer paso para validar una idea de negocio?",
				Options: []string{
					"Crear un prototipo completo",
					"Investigar el mercado objetivo",
					"Buscar inversionistas",
					"Registrar la marca",
				},
				CorrectAnswer: 1,
				Explanation:   "Investigar el mercado objetivo es fundamental para entender si existe demanda real.",
			}},
		},
		{
			ID:          "phase-4",
			Title:       "Gestión de Equipos",
			Description: "Desafíos sobre liderazgo y gestión de recursos humanos",
			Kind:        KindMultipleChoice,
			IsActive:    true,
			Order:       4,
			Questions: []Question{{
				ID:   "team-1",
				Text: "¿Qué característica es más importante en un líder emprendedor?",
				Options: []string{
					"Tomar todas las decisiones solo",
					"Delegar responsabilidades efectivamente",
					"Trabajar más horas que el equipo",
					"Evitar conflictos siempre",
				},
				CorrectAnswer: 1,
				Explanation:   "Delegar efectivamente permite escalar el negocio y desarrollar al equipo.",
			}},
		},
		{
			ID:          "phase-5",
			Title:       "Decisiones Finales",
			Description: "Casos complejos que requieren pensamiento estratégico avanzado",
			Kind:        KindMultipleChoice,
			IsActive:    true,
			Order:       5,
			Questions: []Question{{
				ID:   "final-1",
				Text: "¿Cuál es la decisión más crítica para el crecimiento de una startup?",
				Options: []string{
					"Expandirse geográficamente rápido",
					"Mantener el enfoque en el producto principal",
					"Contratar muchos empleados",
					"Gastar todo el presupuesto en marketing",
				},
				CorrectAnswer: 1,
				Explanation:   "Mantener el enfoque es clave para no dispersar recursos y lograr la excelencia.",
			}},
		},
	}
}

// DefaultSnapshot is the compiled-in configuration used on first start and
// after a reset.
func DefaultSnapshot() Snapshot {
	return Snapshot{Phases: DefaultPhases(), Settings: DefaultSettings()}
}
