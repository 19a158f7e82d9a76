package directive

import (
	"testing"
	"time"
)

var loc = func() *time.Location {
	l, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		panic(err)
	}
	return l
}()

// --- Split ---

func TestSplit_SingleLine(t *testing.T) {
	natural, candidate := Split("Bom dia, Breno.")
	if natural != "Bom dia, Breno." {
		t.Errorf("natural = %q", natural)
	}
	if candidate != "" {
		t.Errorf("candidate = %q, want empty", candidate)
	}
}

func TestSplit_ReplyWithDirective(t *testing.T) {
	natural, candidate := Split("Registrado.\n[SALVAR_NOTA: \"pneu baixo\"]")
	if natural != "Registrado." {
		t.Errorf("natural = %q", natural)
	}
	if candidate != `[SALVAR_NOTA: "pneu baixo"]` {
		t.Errorf("candidate = %q", candidate)
	}
}

func TestSplit_BlankLinesBetween(t *testing.T) {
	natural, candidate := Split("Feito.\n\n[CONVERSAR]")
	if natural != "Feito." {
		t.Errorf("natural = %q", natural)
	}
	if candidate != "[CONVERSAR]" {
		t.Errorf("candidate = %q", candidate)
	}
}

func TestSplit_TrailingWhitespace(t *testing.T) {
	_, candidate := Split("Ok.\n  [CONSULTAR_NOTAS: \"TODAS\"]  \n")
	if candidate != `[CONSULTAR_NOTAS: "TODAS"]` {
		t.Errorf("candidate = %q", candidate)
	}
}

// --- Parse: plain conversation ---

func TestParse_EmptyCandidate(t *testing.T) {
	if _, ok := Parse("", loc).(None); !ok {
		t.Error("expected None for empty candidate")
	}
}

func TestParse_NotBracketed(t *testing.T) {
	if _, ok := Parse("just chatting", loc).(None); !ok {
		t.Error("expected None for unbracketed text")
	}
}

func TestParse_MissingClosingBracket(t *testing.T) {
	if _, ok := Parse(`[SALVAR_NOTA: "oops"`, loc).(None); !ok {
		t.Error("expected None when closing bracket is missing")
	}
}

func TestParse_ExplicitNoOp(t *testing.T) {
	if _, ok := Parse("[CONVERSAR]", loc).(None); !ok {
		t.Error("expected None for [CONVERSAR]")
	}
}

// --- Parse: SALVAR_NOTA ---

func TestParse_SaveNote(t *testing.T) {
	a := Parse(`[SALVAR_NOTA: "buy milk"]`, loc)
	save, ok := a.(SaveNote)
	if !ok {
		t.Fatalf("expected SaveNote, got %T", a)
	}
	if save.Content != "buy milk" {
		t.Errorf("content = %q", save.Content)
	}
}

func TestParse_SaveNoteEmptyContent(t *testing.T) {
	a := Parse(`[SALVAR_NOTA: ""]`, loc)
	inv, ok := a.(Invalid)
	if !ok {
		t.Fatalf("expected Invalid for empty content, got %T", a)
	}
	if inv.Raw != `[SALVAR_NOTA: ""]` {
		t.Errorf("raw = %q", inv.Raw)
	}
}

// --- Parse: AGENDAR_LEMBRETE ---

func TestParse_ScheduleReminder(t *testing.T) {
	a := Parse(`[AGENDAR_LEMBRETE: "call dentist", "2025-11-02 10:00:00"]`, loc)
	sched, ok := a.(ScheduleReminder)
	if !ok {
		t.Fatalf("expected ScheduleReminder, got %T", a)
	}
	if sched.Content != "call dentist" {
		t.Errorf("content = %q", sched.Content)
	}
	want := time.Date(2025, 11, 2, 10, 0, 0, 0, loc)
	if !sched.FireAt.Equal(want) {
		t.Errorf("fireAt = %v, want %v", sched.FireAt, want)
	}
}

func TestParse_ScheduleReminderBadDate(t *testing.T) {
	a := Parse(`[AGENDAR_LEMBRETE: "x", "2025-13-40 99:99:99"]`, loc)
	inv, ok := a.(Invalid)
	if !ok {
		t.Fatalf("expected Invalid for impossible date, got %T", a)
	}
	if inv.Err == nil {
		t.Error("expected underlying parse error to be carried")
	}
}

func TestParse_ScheduleReminderMissingSecondArg(t *testing.T) {
	a := Parse(`[AGENDAR_LEMBRETE: "only content"]`, loc)
	if _, ok := a.(Invalid); !ok {
		t.Fatalf("expected Invalid for missing timestamp, got %T", a)
	}
}

func TestParse_ScheduleReminderEmptyContent(t *testing.T) {
	a := Parse(`[AGENDAR_LEMBRETE: "", "2025-11-02 10:00:00"]`, loc)
	if _, ok := a.(Invalid); !ok {
		t.Fatalf("expected Invalid for empty reminder content, got %T", a)
	}
}

// --- Parse: CONSULTAR_NOTAS ---

func TestParse_ListNotes(t *testing.T) {
	if _, ok := Parse(`[CONSULTAR_NOTAS: "TODAS"]`, loc).(ListNotes); !ok {
		t.Error("expected ListNotes")
	}
}

// --- Parse: DELETAR_NOTA_POR_ID ---

func TestParse_DeleteNote(t *testing.T) {
	a := Parse(`[DELETAR_NOTA_POR_ID: "7"]`, loc)
	del, ok := a.(DeleteNote)
	if !ok {
		t.Fatalf("expected DeleteNote, got %T", a)
	}
	if del.ID != 7 {
		t.Errorf("id = %d, want 7", del.ID)
	}
}

func TestParse_DeleteNoteNonInteger(t *testing.T) {
	a := Parse(`[DELETAR_NOTA_POR_ID: "seven"]`, loc)
	inv, ok := a.(Invalid)
	if !ok {
		t.Fatalf("expected Invalid for non-integer id, got %T", a)
	}
	if inv.Err == nil {
		t.Error("expected underlying parse error to be carried")
	}
}

// --- Parse: malformed commands ---

func TestParse_UnknownKeyword(t *testing.T) {
	a := Parse(`[FAZER_CAFE: "agora"]`, loc)
	inv, ok := a.(Invalid)
	if !ok {
		t.Fatalf("expected Invalid for unknown keyword, got %T", a)
	}
	if inv.Raw != `[FAZER_CAFE: "agora"]` {
		t.Errorf("raw = %q", inv.Raw)
	}
}

func TestParse_NoColonSeparator(t *testing.T) {
	a := Parse(`[SALVAR_NOTA "sem separador"]`, loc)
	if _, ok := a.(Invalid); !ok {
		t.Fatalf("expected Invalid for missing separator, got %T", a)
	}
}
