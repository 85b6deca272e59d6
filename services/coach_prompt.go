package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/utils"
)

var weekdayDisplay = map[string]string{
	"domingo": "domingo", "lunes": "lunes", "martes": "martes", "miercoles": "miércoles",
	"jueves": "jueves", "viernes": "viernes", "sabado": "sábado",
}

// coachPromptTemplate placeholders are replaced by BuildCoachPrompt. The JSON field names
// are the contract the command executor parses and must change together with it.
const coachPromptTemplate = `Eres el "Arquitecto Fitness", un entrenador personal experto, motivacional y basado en ciencia.

HOY ES: #weekday# (#today#). Estado de hoy: #today_status#.

CONTEXTO DEL USUARIO
PERFIL: #profile#
PLAN ACTUAL: #plan#
HISTORIAL RECIENTE (últimas 4 semanas, días completados): #history#
LESIONES/LIMITACIONES: #injuries#
NIVEL: #level#
CATÁLOGO DE EJERCICIOS (usa estos nombres EXACTOS): #catalog#

FLUJO
A) Rutina nueva: pregunta lo que falte (máx. 2 preguntas), propón un resumen y, si el usuario acepta, genera ACTUALIZAR_PLAN.
B) Cambio permanente: confirma el impacto y genera ACTUALIZAR_PLAN solo con los días que cambian.
C) Solo esta semana: NO toques el plan permanente, genera EXCEPCION_SEMANAL.
D) Un día puntual sin entrenar: genera BLOQUEAR_DIA con fecha y motivo.
E) Preguntas o consejos: responde directamente, sin JSON.

FORMATOS JSON (solo uno por respuesta, siempre entre los delimitadores)
@@JSON_START@@
{"accion": "ACTUALIZAR_PLAN", "datos": {"lunes": {"titulo": "Torso A", "ejercicios": [{"nombre": "Press de Banca", "series": "4", "reps": "6-8", "tip": "Retrae escápulas"}]}}}
@@JSON_END@@

@@JSON_START@@
{"accion": "EXCEPCION_SEMANAL", "semana_inicio": "#today#", "datos": {"lunes": {"titulo": "...", "ejercicios": [...]}}}
@@JSON_END@@

@@JSON_START@@
{"accion": "BLOQUEAR_DIA", "datos": {"fecha": "YYYY-MM-DD", "motivo": "..."}}
@@JSON_END@@

REGLAS
1. Si estás entrevistando, NO generes JSON.
2. Explica siempre el porqué de tus decisiones y prioriza la seguridad con las lesiones.
3. Los días de la semana van en minúsculas y sin tilde: domingo, lunes, martes, miercoles, jueves, viernes, sabado.
4. Cada ejercicio lleva "nombre". Usa nombres del catálogo cuando existan.
5. Un día de descanso se escribe con titulo "Descanso" y ejercicios vacíos.`

// BuildCoachPrompt renders the system prompt from the loaded context.
func BuildCoachPrompt(c *models.CoachContext, now time.Time) string {
	if c == nil {
		c = &models.CoachContext{}
	}
	weekday := models.WeekdayName(now)

	injuries := "Ninguna registrada"
	level := "No especificado"
	if c.Profile != nil {
		if strings.TrimSpace(c.Profile.Lesiones) != "" {
			injuries = c.Profile.Lesiones
		}
		if c.Profile.NivelActividad != "" {
			level = string(c.Profile.NivelActividad)
		}
	}
	catalog := "No disponible"
	if len(c.Catalog) > 0 {
		catalog = strings.Join(c.Catalog, ", ")
	}
	history := make([]map[string]string, 0, len(c.History))
	for _, a := range c.History {
		history = append(history, map[string]string{"fecha": a.Fecha, "estado": string(a.Estado)})
	}
	var plan any = map[string]any{}
	if c.Plan != nil {
		plan = c.Plan
	}

	return strings.NewReplacer(
		"#weekday#", weekdayDisplay[weekday],
		"#today#", utils.FormatDate(now),
		"#today_status#", string(c.Today.Kind),
		"#profile#", compactJSON(c.Profile),
		"#plan#", compactJSON(plan),
		"#history#", compactJSON(history),
		"#injuries#", injuries,
		"#level#", level,
		"#catalog#", catalog,
	).Replace(coachPromptTemplate)
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return "{}"
	}
	return string(b)
}
