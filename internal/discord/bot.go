package discord

import (
	"fmt"
	"log"

	"github.com/breno/orion/internal/agent"
	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	session *discordgo.Session
	agent   *agent.Agent
}

func NewBot(token string, ag *agent.Agent) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating Discord session: %w", err)
	}

	bot := &Bot{session: s, agent: ag}
	s.AddHandler(bot.onMessage)
	s.Identify.Intents = discordgo.IntentsDirectMessages | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("opening Discord connection: %w", err)
	}

	log.Printf("Discord bot connected as %s", s.State.User.Username)
	return bot, nil
}

// SendReminder DMs a fired reminder to its owner.
func (b *Bot) SendReminder(owner, payload string) error {
	ch, err := b.session.UserChannelCreate(owner)
	if err != nil {
		return fmt.Errorf("opening DM channel: %w", err)
	}
	msg := fmt.Sprintf("🔔 ALERTA:\n\n- %s", payload)
	if _, err := b.session.ChannelMessageSend(ch.ID, msg); err != nil {
		return fmt.Errorf("sending reminder DM: %w", err)
	}
	return nil
}

func (b *Bot) Close() {
	b.session.Close()
}
