// Package directive extracts the bracketed command from the tail of an LLM
// reply and turns it into a typed action.
//
// The model is instructed to answer in natural language and, when an action
// is requested, append exactly one command on its own final line:
//
//	[SALVAR_NOTA: "content"]
//	[AGENDAR_LEMBRETE: "content", "2006-01-02 15:04:05"]
//	[CONSULTAR_NOTAS: "TODAS"]
//	[DELETAR_NOTA_POR_ID: "7"]
//	[CONVERSAR]
//
// Everything the model sends is untrusted. Anything that does not match the
// grammar becomes an Invalid action carrying the raw text, so the failure is
// visible to the user instead of silently dropped.
package directive

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var directiveRe = regexp.MustCompile(`^\[(\w+): (.*)\]$`)

// TimeLayout is the timestamp format the model is told to use.
const TimeLayout = "2006-01-02 15:04:05"

// noOpMarker is the explicit "no action" command. It suppresses the
// unrecognized-command diagnostic.
const noOpMarker = "[CONVERSAR]"

type Action interface {
	action()
}

type SaveNote struct {
	Content string
}

type ScheduleReminder struct {
	Content string
	FireAt  time.Time
}

type ListNotes struct{}

type DeleteNote struct {
	ID int64
}

// None means the reply is pure conversation: no directive line at all, or the
// explicit no-op marker.
type None struct{}

// Reason classifies why a directive could not be parsed.
type Reason string

const (
	ReasonUnrecognized Reason = "unrecognized command"
	ReasonBadArguments Reason = "malformed arguments"
	ReasonEmptyContent Reason = "empty content"
	ReasonBadTimestamp Reason = "bad timestamp"
	ReasonBadID        Reason = "bad id"
)

// Invalid is a directive the model formatted wrong. Raw carries the whole
// offending line and Detail the offending argument, for the diagnostic reply.
type Invalid struct {
	Raw    string
	Reason Reason
	Detail string
	Err    error
}

func (SaveNote) action()         {}
func (ScheduleReminder) action() {}
func (ListNotes) action()        {}
func (DeleteNote) action()       {}
func (None) action()             {}
func (Invalid) action()          {}

// Split separates an LLM reply into the natural-language reply (the first
// line, always shown to the user) and the candidate directive (the last line,
// if the reply has more than one).
func Split(reply string) (natural, candidate string) {
	lines := strings.Split(strings.TrimSpace(reply), "\n")
	natural = strings.TrimSpace(lines[0])
	if len(lines) > 1 {
		candidate = strings.TrimSpace(lines[len(lines)-1])
	}
	return natural, candidate
}

// Parse turns a candidate directive line into an Action. Timestamps are
// interpreted in loc.
func Parse(candidate string, loc *time.Location) Action {
	if candidate == "" || !strings.HasPrefix(candidate, "[") || !strings.HasSuffix(candidate, "]") {
		return None{}
	}
	if candidate == noOpMarker {
		return None{}
	}

	m := directiveRe.FindStringSubmatch(candidate)
	if m == nil {
		return Invalid{Raw: candidate, Reason: ReasonUnrecognized}
	}
	keyword, rest := m[1], m[2]

	switch keyword {
	case "SALVAR_NOTA":
		return parseSave(candidate, rest)
	case "AGENDAR_LEMBRETE":
		return parseSchedule(candidate, rest, loc)
	case "CONSULTAR_NOTAS":
		// The argument selects a query mode, but only one mode exists.
		return ListNotes{}
	case "DELETAR_NOTA_POR_ID":
		return parseDelete(candidate, rest)
	}
	return Invalid{Raw: candidate, Reason: ReasonUnrecognized}
}

func parseSave(raw, rest string) Action {
	content := unquote(rest)
	if content == "" {
		return Invalid{Raw: raw, Reason: ReasonEmptyContent}
	}
	return SaveNote{Content: content}
}

func parseSchedule(raw, rest string, loc *time.Location) Action {
	content, stamp, ok := strings.Cut(rest, `", "`)
	if !ok {
		return Invalid{Raw: raw, Reason: ReasonBadArguments, Detail: rest}
	}
	content = unquote(content)
	stamp = unquote(stamp)
	if content == "" {
		return Invalid{Raw: raw, Reason: ReasonEmptyContent}
	}
	fireAt, err := time.ParseInLocation(TimeLayout, stamp, loc)
	if err != nil {
		return Invalid{Raw: raw, Reason: ReasonBadTimestamp, Detail: stamp, Err: err}
	}
	return ScheduleReminder{Content: content, FireAt: fireAt}
}

func parseDelete(raw, rest string) Action {
	idStr := unquote(rest)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return Invalid{Raw: raw, Reason: ReasonBadID, Detail: idStr, Err: err}
	}
	return DeleteNote{ID: id}
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
