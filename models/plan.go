package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Weekdays in time.Weekday order (Sunday first).
var Weekdays = []string{"domingo", "lunes", "martes", "miercoles", "jueves", "viernes", "sabado"}

var weekdayAliases = map[string]string{
	"miércoles": "miercoles",
	"sábado":    "sabado",
	"sunday":    "domingo",
	"monday":    "lunes",
	"tuesday":   "martes",
	"wednesday": "miercoles",
	"thursday":  "jueves",
	"friday":    "viernes",
	"saturday":  "sabado",
}

// WeekdayName returns the lowercase plan key for t's weekday.
func WeekdayName(t time.Time) string {
	return Weekdays[t.Weekday()]
}

// NormalizeWeekday maps a free-form weekday name to its plan key, or "" if unknown.
func NormalizeWeekday(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := weekdayAliases[key]; ok {
		return alias
	}
	for _, d := range Weekdays {
		if d == key {
			return d
		}
	}
	return ""
}

// RestTitles are day titles that mark a planned rest day.
var RestTitles = []string{"descanso", "rest"}

// SetCount accepts either a JSON number or a numeric string ("4").
type SetCount int

func (s *SetCount) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*s = SetCount(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return fmt.Errorf("series must be a number or numeric string: %w", err)
	}
	str = strings.TrimSpace(str)
	if str == "" {
		*s = 0
		return nil
	}
	n2, err := strconv.Atoi(str)
	if err != nil {
		// Ranges like "3-4" keep the lower bound.
		if head, _, ok := strings.Cut(str, "-"); ok {
			if n3, err3 := strconv.Atoi(strings.TrimSpace(head)); err3 == nil {
				*s = SetCount(n3)
				return nil
			}
		}
		return fmt.Errorf("series %q is not numeric", str)
	}
	*s = SetCount(n2)
	return nil
}

// RepTarget is a rep scalar or range ("6-8"); numbers are kept as their string form.
type RepTarget string

func (r *RepTarget) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*r = RepTarget(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("reps must be a string or number: %w", err)
	}
	*r = RepTarget(n.String())
	return nil
}

// ExerciseSpec is one exercise inside a plan day.
type ExerciseSpec struct {
	Nombre   string    `json:"nombre"`
	Series   SetCount  `json:"series,omitempty"`
	Reps     RepTarget `json:"reps,omitempty"`
	Tip      string    `json:"tip,omitempty"`
	Catalogo string    `json:"catalogo,omitempty"` // Canonical catalog name when matched
	GifURL   string    `json:"gifUrl,omitempty"`
}

// UnmarshalJSON accepts a bare string or an object using nombre/name/titulo for the name.
func (e *ExerciseSpec) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		*e = ExerciseSpec{Nombre: name}
		return nil
	}
	type plain ExerciseSpec
	var aux struct {
		plain
		Name   string `json:"name"`
		Titulo string `json:"titulo"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*e = ExerciseSpec(aux.plain)
	if e.Nombre == "" {
		if aux.Name != "" {
			e.Nombre = aux.Name
		} else {
			e.Nombre = aux.Titulo
		}
	}
	return nil
}

// DayEntry is the plan for one weekday.
type DayEntry struct {
	Titulo     string         `json:"titulo"`
	Ejercicios []ExerciseSpec `json:"ejercicios"`
}

// IsRest reports whether the entry describes a rest day.
func (d *DayEntry) IsRest() bool {
	if d == nil || len(d.Ejercicios) == 0 {
		return true
	}
	title := strings.ToLower(strings.TrimSpace(d.Titulo))
	for _, t := range RestTitles {
		if title == t {
			return true
		}
	}
	return false
}

// Week maps weekday keys to raw day JSON. Raw values let untouched days round-trip byte for byte.
type Week map[string]json.RawMessage

// Merge returns a copy of w where every day in overlay replaces the same weekday.
// Days absent from overlay keep their exact bytes.
func (w Week) Merge(overlay Week) Week {
	out := make(Week, len(w)+len(overlay))
	for key, raw := range w {
		out[key] = raw
	}
	for key, raw := range overlay {
		day := NormalizeWeekday(key)
		if day == "" {
			day = key
		}
		for existing := range out {
			if existing != day && NormalizeWeekday(existing) == day {
				delete(out, existing)
			}
		}
		out[day] = raw
	}
	return out
}

// Encode serializes the week for the datos_semana column without HTML escaping.
func (w Week) Encode() (datatypes.JSON, error) {
	if w == nil {
		w = Week{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]json.RawMessage(w)); err != nil {
		return nil, fmt.Errorf("failed to encode week: %w", err)
	}
	return datatypes.JSON(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// PlanKind tags how a weekly plan row participates in resolution.
type PlanKind string

const (
	PlanKindPermanent PlanKind = "permanent"
	PlanKindException PlanKind = "exception"
)

// ExceptionWindowDays is how many calendar days a temporary exception stays in effect.
const ExceptionWindowDays = 7

// WeeklyPlan is one insert-only version of a user's weekly plan, or a temporary exception.
type WeeklyPlan struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	UserID      string         `json:"user_id" gorm:"index;not null"`
	Nombre      string         `json:"nombre"`
	DatosSemana datatypes.JSON `json:"datos_semana" gorm:"column:datos_semana"`
	EsTemporal  bool           `json:"es_temporal" gorm:"default:false;index"`
	FechaInicio string         `json:"fecha_inicio,omitempty" gorm:"type:varchar(10);index"` // YYYY-MM-DD, exceptions only
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for the WeeklyPlan model.
func (WeeklyPlan) TableName() string {
	return "planes_semanales"
}

// Kind returns whether the plan is permanent or a temporary exception.
func (p *WeeklyPlan) Kind() PlanKind {
	if p.EsTemporal {
		return PlanKindException
	}
	return PlanKindPermanent
}

// Week decodes the stored days. A nil plan or empty column yields an empty week.
func (p *WeeklyPlan) Week() (Week, error) {
	week := Week{}
	if p == nil || len(p.DatosSemana) == 0 {
		return week, nil
	}
	if err := json.Unmarshal(p.DatosSemana, &week); err != nil {
		return nil, fmt.Errorf("failed to decode plan %d days: %w", p.ID, err)
	}
	return week, nil
}

// Day returns the decoded entry for weekday, matching keys case-insensitively.
func (p *WeeklyPlan) Day(weekday string) (*DayEntry, bool) {
	week, err := p.Week()
	if err != nil {
		return nil, false
	}
	return week.Day(weekday)
}

// Day returns the decoded entry for weekday, matching keys case-insensitively.
func (w Week) Day(weekday string) (*DayEntry, bool) {
	for key, raw := range w {
		if NormalizeWeekday(key) != weekday {
			continue
		}
		var entry DayEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, false
		}
		return &entry, true
	}
	return nil, false
}

// Covers reports whether an exception plan's window includes date (YYYY-MM-DD).
func (p *WeeklyPlan) Covers(date time.Time) bool {
	if !p.EsTemporal || p.FechaInicio == "" {
		return false
	}
	start, err := time.ParseInLocation("2006-01-02", p.FechaInicio, date.Location())
	if err != nil {
		return false
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return !day.Before(start) && day.Before(start.AddDate(0, 0, ExceptionWindowDays))
}
