package models

import "encoding/json"

// CommandKind is the closed set of actions the coach can emit.
type CommandKind string

const (
	CommandUpdatePlan      CommandKind = "ACTUALIZAR_PLAN"
	CommandWeeklyException CommandKind = "EXCEPCION_SEMANAL"
	CommandBlockDay        CommandKind = "BLOQUEAR_DIA"
)

// CommandKinds lists every recognized kind, in extraction priority order.
var CommandKinds = []CommandKind{CommandUpdatePlan, CommandWeeklyException, CommandBlockDay}

// Command is the wire shape embedded in the model's reply. It is never persisted.
type Command struct {
	Accion       CommandKind     `json:"accion"`
	Datos        json.RawMessage `json:"datos"`
	SemanaInicio string          `json:"semana_inicio,omitempty"`
}

var commandAliases = map[string]CommandKind{
	"UPDATE_PLAN":      CommandUpdatePlan,
	"WEEKLY_EXCEPTION": CommandWeeklyException,
	"BLOCK_DAY":        CommandBlockDay,
}

// ParseCommandKind maps a wire or English kind literal to its CommandKind.
func ParseCommandKind(s string) (CommandKind, bool) {
	key := CommandKind(s)
	for _, k := range CommandKinds {
		if k == key {
			return k, true
		}
	}
	k, ok := commandAliases[s]
	return k, ok
}

// CommandLiterals returns every string literal the extractor recognizes as a command kind.
func CommandLiterals() []string {
	out := make([]string, 0, len(CommandKinds)+len(commandAliases))
	for _, k := range CommandKinds {
		out = append(out, string(k))
	}
	for alias := range commandAliases {
		out = append(out, alias)
	}
	return out
}
