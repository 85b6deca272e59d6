package utils

import (
	"encoding/json"
	"fmt"

	"github.com/samuelurones28/Proyecto/models"
)

// NormalizePlanPayload validates a weekday-keyed plan payload and rewrites every exercise
// name through the matcher. Weekday keys come back in canonical form. Errors wrap
// models.ErrInvalidPayload.
func NormalizePlanPayload(raw json.RawMessage, m *Matcher, catalog []string) (models.Week, error) {
	var days map[string]json.RawMessage
	if err := json.Unmarshal(raw, &days); err != nil || days == nil {
		return nil, fmt.Errorf("%w: plan data must be an object keyed by weekday", models.ErrInvalidPayload)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: plan data has no days", models.ErrInvalidPayload)
	}

	week := make(models.Week, len(days))
	for key, dayRaw := range days {
		weekday := models.NormalizeWeekday(key)
		if weekday == "" {
			return nil, fmt.Errorf("%w: unknown weekday %q", models.ErrInvalidPayload, key)
		}
		if _, dup := week[weekday]; dup {
			return nil, fmt.Errorf("%w: weekday %q given twice", models.ErrInvalidPayload, weekday)
		}
		day, err := normalizeDay(dayRaw, m, catalog)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", models.ErrInvalidPayload, weekday, err)
		}
		week[weekday] = day
	}
	return week, nil
}

func normalizeDay(raw json.RawMessage, m *Matcher, catalog []string) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("day must be an object")
	}
	renameField(fields, "title", "titulo")
	renameField(fields, "exercises", "ejercicios")

	exRaw, ok := fields["ejercicios"]
	if !ok {
		return nil, fmt.Errorf("missing ejercicios")
	}
	var exercises []json.RawMessage
	if err := json.Unmarshal(exRaw, &exercises); err != nil || exercises == nil {
		return nil, fmt.Errorf("ejercicios must be a list")
	}

	out := make([]map[string]json.RawMessage, 0, len(exercises))
	for i, ex := range exercises {
		obj, err := exerciseObject(ex)
		if err != nil {
			return nil, fmt.Errorf("exercise %d: %v", i, err)
		}
		var name string
		for _, key := range []string{"nombre", "name", "titulo"} {
			if v, ok := obj[key]; ok {
				if err := json.Unmarshal(v, &name); err == nil && name != "" {
					break
				}
			}
		}
		delete(obj, "name")
		delete(obj, "titulo")
		normalized := NormalizeName(name)
		if canonical, ok := m.Match(normalized, catalog); ok {
			normalized = canonical
			obj["catalogo"], _ = json.Marshal(canonical)
		}
		obj["nombre"], _ = json.Marshal(normalized)
		out = append(out, obj)
	}
	encodedList, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	fields["ejercicios"] = encodedList
	return json.Marshal(fields)
}

func exerciseObject(raw json.RawMessage) (map[string]json.RawMessage, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		encoded, _ := json.Marshal(name)
		return map[string]json.RawMessage{"nombre": encoded}, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("must be an object or a name")
	}
	return obj, nil
}

func renameField(fields map[string]json.RawMessage, from, to string) {
	if v, ok := fields[from]; ok {
		if _, exists := fields[to]; !exists {
			fields[to] = v
		}
		delete(fields, from)
	}
}
