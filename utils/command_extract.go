package utils

import (
	"regexp"
	"strings"

	"github.com/samuelurones28/Proyecto/models"
)

// Sentinels the coach prompt asks the model to wrap commands in.
const (
	CommandStart = "@@JSON_START@@"
	CommandEnd   = "@@JSON_END@@"
)

// CommandSpan locates an extracted command inside the model's reply.
type CommandSpan struct {
	JSON      string // Raw command JSON
	Start     int    // Byte offset of the span in the reply, delimiters included
	End       int    // Exclusive end offset
	Delimited bool
}

// ExtractCommand returns at most one command from raw reply text.
// Delimited extraction is tried first, then brace counting from the earliest command-kind literal.
func ExtractCommand(text string) (CommandSpan, bool) {
	if span, ok := extractDelimited(text); ok {
		return span, true
	}
	return extractByBraces(text)
}

func extractDelimited(text string) (CommandSpan, bool) {
	start := strings.Index(text, CommandStart)
	if start < 0 {
		return CommandSpan{}, false
	}
	bodyStart := start + len(CommandStart)
	rel := strings.Index(text[bodyStart:], CommandEnd)
	if rel < 0 {
		return CommandSpan{}, false
	}
	bodyEnd := bodyStart + rel
	body := strings.TrimSpace(text[bodyStart:bodyEnd])
	if body == "" {
		return CommandSpan{}, false
	}
	return CommandSpan{
		JSON:      body,
		Start:     start,
		End:       bodyEnd + len(CommandEnd),
		Delimited: true,
	}, true
}

// kindValue matches a quoted command-kind literal used as a JSON value.
var kindValue = buildKindValuePattern()

func buildKindValuePattern() *regexp.Regexp {
	literals := models.CommandLiterals()
	quoted := make([]string, len(literals))
	for i, l := range literals {
		quoted[i] = regexp.QuoteMeta(l)
	}
	return regexp.MustCompile(`:\s*"(` + strings.Join(quoted, "|") + `)"`)
}

func extractByBraces(text string) (CommandSpan, bool) {
	loc := kindValue.FindStringIndex(text)
	if loc == nil {
		return CommandSpan{}, false
	}
	open, end := enclosingObject(text, loc[0])
	if open < 0 {
		return CommandSpan{}, false
	}
	return CommandSpan{JSON: text[open : end+1], Start: open, End: end + 1}, true
}

// enclosingObject returns the innermost '{' before pos whose object still contains pos,
// and the index of its closing '}'. Candidates are tried nearest first.
func enclosingObject(text string, pos int) (int, int) {
	for i := pos - 1; i >= 0; i-- {
		if text[i] != '{' {
			continue
		}
		if end := closeEnclosing(text, i, pos); end >= 0 {
			return i, end
		}
	}
	return -1, -1
}

// closeEnclosing scans forward from open and returns its matching '}', or -1 when the
// object closes before pos, pos falls inside a string, or the object never closes.
// Braces inside JSON strings are ignored.
func closeEnclosing(text string, open, pos int) int {
	depth := 0
	inString, escaped := false, false
	for i := open; i < len(text); i++ {
		if i == pos && (inString || depth == 0) {
			return -1
		}
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				if i < pos {
					return -1
				}
				return i
			}
		}
	}
	return -1
}

var (
	jsonFence      = regexp.MustCompile("(?s)```(?:json)?\\s*```")
	emptyDelimited = regexp.MustCompile(regexp.QuoteMeta(CommandStart) + `\s*` + regexp.QuoteMeta(CommandEnd))
	residualPhrase = regexp.MustCompile(`(?i)(aquí (está|tienes) el json|el json (es|sería))[:.]?`)
	extraNewlines  = regexp.MustCompile(`\n{3,}`)
)

// CleanReply removes the command span and the scaffolding the model tends to leave around it,
// then appends the outcome line.
func CleanReply(text string, span CommandSpan, outcome string) string {
	cleaned := text
	if span.End > span.Start && span.End <= len(text) {
		cleaned = text[:span.Start] + text[span.End:]
	}
	cleaned = emptyDelimited.ReplaceAllString(cleaned, "")
	cleaned = jsonFence.ReplaceAllString(cleaned, "")
	cleaned = residualPhrase.ReplaceAllString(cleaned, "")
	cleaned = extraNewlines.ReplaceAllString(cleaned, "\n\n")
	cleaned = strings.TrimSpace(cleaned)
	if outcome == "" {
		return cleaned
	}
	if cleaned == "" {
		return "_" + outcome + "_"
	}
	return cleaned + "\n\n_" + outcome + "_"
}
