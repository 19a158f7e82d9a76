package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/breno/orion/config"
	"github.com/breno/orion/internal/agent"
	"github.com/breno/orion/internal/db"
	"github.com/breno/orion/internal/discord"
	"github.com/breno/orion/internal/llm"
	"github.com/breno/orion/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	database, err := db.Open(cfg.DatabasePath, cfg.Location())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	client, err := llm.NewClient(llm.ProviderConfig{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.APIKey(),
		Model:    cfg.LLMModel,
	})
	if err != nil {
		log.Fatalf("failed to create LLM client: %v", err)
	}

	// If Discord token is set, run as bot
	if cfg.DiscordToken != "" {
		runBot(cfg, database, client)
		return
	}

	// Otherwise, CLI mode
	runCLI(cfg, database, client)
}

// reminderSender hands reminders to the Discord bot once it exists. The
// scheduler is built before the bot (the bot needs the agent, the agent needs
// the scheduler), and a past-dated reminder can fire from a timer goroutine
// during that window, so the bot pointer is set and read under a lock.
type reminderSender struct {
	mu  sync.Mutex
	bot *discord.Bot
}

func (r *reminderSender) set(b *discord.Bot) {
	r.mu.Lock()
	r.bot = b
	r.mu.Unlock()
}

func (r *reminderSender) deliver(owner, payload string) error {
	r.mu.Lock()
	bot := r.bot
	r.mu.Unlock()
	if bot == nil {
		return fmt.Errorf("discord session not ready, cannot deliver to %s", owner)
	}
	return bot.SendReminder(owner, payload)
}

func runBot(cfg *config.Config, database *db.DB, client llm.Client) {
	sender := &reminderSender{}
	sched := scheduler.New(database, sender.deliver)

	ag := agent.New(database, client, sched, cfg.Location(), cfg.LLMTimeout)

	bot, err := discord.NewBot(cfg.DiscordToken, ag)
	if err != nil {
		log.Fatalf("failed to start Discord bot: %v", err)
	}
	defer bot.Close()
	sender.set(bot)

	sched.Start()
	defer sched.Stop()

	log.Println("bot is running. Press Ctrl+C to exit.")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down.")
}

func runCLI(cfg *config.Config, database *db.DB, client llm.Client) {
	sched := scheduler.New(database, func(_, payload string) error {
		fmt.Printf("\n🔔 ALERTA:\n\n- %s\n", payload)
		return nil
	})
	sched.Start()
	defer sched.Stop()

	ag := agent.New(database, client, sched, cfg.Location(), cfg.LLMTimeout)

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	// Check if stdin is a pipe (non-interactive)
	stat, _ := os.Stdin.Stat()
	isPipe := (stat.Mode() & os.ModeCharDevice) == 0

	if !isPipe {
		fmt.Print("orion> ")
	}

	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			if !isPipe {
				fmt.Print("orion> ")
			}
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		for _, reply := range ag.HandleText(ctx, "cli", input) {
			fmt.Println(reply)
		}

		if isPipe {
			break // single exchange in pipe mode
		}
		fmt.Print("orion> ")
	}
}
