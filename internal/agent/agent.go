// Package agent drives one message exchange end to end: build the prompt,
// call the LLM, parse the directive off the reply, and execute it against the
// note store and the reminder scheduler.
package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/breno/orion/internal/db"
	"github.com/breno/orion/internal/directive"
	"github.com/breno/orion/internal/llm"
	"github.com/breno/orion/internal/scheduler"
	"github.com/dustin/go-humanize"
)

// failureReply is the single generic reply for transport/LLM/store failures.
// No retry: the user re-sends.
const failureReply = "Erro no processamento. Tente novamente."

type Agent struct {
	db      *db.DB
	client  llm.Client
	sched   *scheduler.Scheduler
	loc     *time.Location
	timeout time.Duration

	now func() time.Time // test seam
}

func New(database *db.DB, client llm.Client, sched *scheduler.Scheduler, loc *time.Location, timeout time.Duration) *Agent {
	a := &Agent{
		db:      database,
		client:  client,
		sched:   sched,
		loc:     loc,
		timeout: timeout,
	}
	a.now = func() time.Time { return time.Now().In(loc) }
	return a
}

// HandleText processes one text message from owner and returns the replies to
// send, in order. The first reply is always the model's natural-language
// answer (or the generic failure text).
func (a *Agent) HandleText(ctx context.Context, owner, text string) []string {
	return a.respond(ctx, owner, llm.Request{
		Prompt: llm.BuildPrompt(a.now(), text),
	})
}

// HandleVoice processes one voice message. The audio goes to the LLM as an
// attachment; the rest of the pipeline is identical to text.
func (a *Agent) HandleVoice(ctx context.Context, owner string, audio llm.Audio) []string {
	return a.respond(ctx, owner, llm.Request{
		Prompt: llm.BuildPrompt(a.now(), llm.VoiceInstruction),
		Audio:  &audio,
	})
}

func (a *Agent) respond(ctx context.Context, owner string, req llm.Request) []string {
	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.client.Generate(cctx, req)
	if err != nil {
		log.Printf("agent: llm generate: %v", err)
		return []string{failureReply}
	}

	natural, candidate := directive.Split(raw)
	replies := []string{natural}

	action := directive.Parse(candidate, a.loc)
	if extra := a.execute(owner, action); extra != "" {
		replies = append(replies, extra)
	}
	return replies
}

// execute applies one action and returns an extra reply to surface, or ""
// when the natural reply already says everything.
func (a *Agent) execute(owner string, action directive.Action) string {
	switch act := action.(type) {
	case directive.SaveNote:
		if _, err := a.db.InsertNote(owner, act.Content, nil); err != nil {
			log.Printf("agent: saving note: %v", err)
			return failureReply
		}
		return ""

	case directive.ScheduleReminder:
		// Durable row first: a timer must never exist without its record.
		if _, err := a.db.InsertNote(owner, act.Content, &act.FireAt); err != nil {
			log.Printf("agent: saving reminder: %v", err)
			return failureReply
		}
		a.sched.Schedule(owner, act.FireAt, act.Content)
		return ""

	case directive.ListNotes:
		return a.listNotes(owner)

	case directive.DeleteNote:
		return a.deleteNote(owner, act.ID)

	case directive.Invalid:
		return renderInvalid(act)
	}
	// directive.None: pure conversation.
	return ""
}

func (a *Agent) listNotes(owner string) string {
	now := a.now()
	pending, err := a.db.ListPending(owner, now)
	if err != nil {
		log.Printf("agent: listing pending notes: %v", err)
		return failureReply
	}
	completed, err := a.db.ListCompleted(owner, now)
	if err != nil {
		log.Printf("agent: listing completed notes: %v", err)
		return failureReply
	}
	simple, err := a.db.ListSimple(owner)
	if err != nil {
		log.Printf("agent: listing simple notes: %v", err)
		return failureReply
	}

	var b strings.Builder
	b.WriteString("⏰ **LEMBRETES PENDENTES:**\n")
	if len(pending) == 0 {
		b.WriteString("  (nenhum)\n")
	}
	for _, n := range pending {
		fmt.Fprintf(&b, "  **ID %d**: %s — %s (%s)\n",
			n.ID, n.Content, n.DueAt.Format("02/01/2006 15:04"), humanize.Time(*n.DueAt))
	}

	b.WriteString("\n✅ **LEMBRETES CONCLUÍDOS:**\n")
	if len(completed) == 0 {
		b.WriteString("  (nenhum)\n")
	}
	for _, n := range completed {
		fmt.Fprintf(&b, "  **ID %d**: %s — %s\n",
			n.ID, n.Content, n.DueAt.Format("02/01/2006 15:04"))
	}

	b.WriteString("\n📝 **NOTAS SIMPLES:**\n")
	if len(simple) == 0 {
		b.WriteString("  (nenhuma)\n")
	}
	for _, n := range simple {
		fmt.Fprintf(&b, "  **ID %d**: %s\n", n.ID, n.Content)
	}

	return strings.TrimRight(b.String(), "\n")
}

func (a *Agent) deleteNote(owner string, id int64) string {
	// Known gap, kept on purpose: ownership is not checked, so any owner can
	// delete any id.
	note, err := a.db.GetNote(id)
	if err != nil {
		log.Printf("agent: loading note %d: %v", id, err)
		return failureReply
	}
	if err := a.db.DeleteNote(id); err != nil {
		log.Printf("agent: deleting note %d: %v", id, err)
		return "Tentei apagar a nota, mas falhei."
	}
	// Deleting a pending reminder also cancels its timer, so a reminder the
	// user removed never fires.
	if note != nil && note.DueAt != nil && note.DueAt.After(a.now()) {
		a.sched.Cancel(note.Owner, *note.DueAt, note.Content)
	}
	return ""
}

func renderInvalid(inv directive.Invalid) string {
	switch inv.Reason {
	case directive.ReasonEmptyContent:
		return "Erro no processamento: a IA tentou salvar uma nota vazia."
	case directive.ReasonBadTimestamp:
		return fmt.Sprintf("Tentei agendar, mas falhei. A IA formatou a data/hora errado: %q (erro: %v)", inv.Detail, inv.Err)
	case directive.ReasonBadID:
		return fmt.Sprintf("Erro: a IA tentou apagar um ID inválido: %q", inv.Detail)
	case directive.ReasonBadArguments:
		return fmt.Sprintf("(Debug: argumentos inválidos no comando: %s)", inv.Raw)
	default:
		return fmt.Sprintf("(Debug: não consegui entender o comando: %s)", inv.Raw)
	}
}
