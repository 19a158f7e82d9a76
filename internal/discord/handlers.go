package discord

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/breno/orion/internal/llm"
	"github.com/bwmarrin/discordgo"
)

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore own messages
	if m.Author.ID == s.State.User.ID {
		return
	}

	// Only respond to DMs or when mentioned
	isDM := m.GuildID == ""
	isMentioned := false
	for _, u := range m.Mentions {
		if u.ID == s.State.User.ID {
			isMentioned = true
			break
		}
	}
	if !isDM && !isMentioned {
		return
	}

	// Show typing indicator while the LLM call is in flight
	s.ChannelTyping(m.ChannelID)

	ctx := context.Background()
	owner := m.Author.ID

	var replies []string
	if att := voiceAttachment(m); att != nil {
		replies = b.handleVoice(ctx, owner, att)
	} else {
		content := strings.TrimSpace(stripMention(m.Content, s.State.User.ID))
		if content == "" {
			return
		}
		replies = b.agent.HandleText(ctx, owner, content)
	}

	for _, reply := range replies {
		// Discord has a 2000 char limit; split if needed
		for _, chunk := range splitMessage(reply, 2000) {
			if _, err := s.ChannelMessageSend(m.ChannelID, chunk); err != nil {
				log.Printf("discord: sending reply: %v", err)
			}
		}
	}
}

func (b *Bot) handleVoice(ctx context.Context, owner string, att *discordgo.MessageAttachment) []string {
	path, err := downloadAttachment(att.URL)
	if err != nil {
		log.Printf("discord: downloading voice attachment: %v", err)
		return []string{"Não consegui baixar o áudio. Tente novamente."}
	}
	// The temp file goes away on every exit path.
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("discord: reading voice attachment: %v", err)
		return []string{"Não consegui processar o áudio. Tente novamente."}
	}

	return b.agent.HandleVoice(ctx, owner, llm.Audio{Data: data, MIME: att.ContentType})
}

func voiceAttachment(m *discordgo.MessageCreate) *discordgo.MessageAttachment {
	for _, att := range m.Attachments {
		if strings.HasPrefix(att.ContentType, "audio/") {
			return att
		}
	}
	return nil
}

// downloadAttachment fetches a transport attachment into a temp file and
// returns its path. The caller removes the file.
func downloadAttachment(url string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("fetching attachment: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("fetching attachment: status %s", resp.Status)
	}

	f, err := os.CreateTemp("", "orion-voice-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing attachment: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return f.Name(), nil
}

func stripMention(s, userID string) string {
	s = strings.ReplaceAll(s, "<@"+userID+">", "")
	s = strings.ReplaceAll(s, "<@!"+userID+">", "")
	return s
}

func splitMessage(s string, maxLen int) []string {
	if len(s) <= maxLen {
		return []string{s}
	}
	var chunks []string
	for len(s) > 0 {
		end := maxLen
		if end > len(s) {
			end = len(s)
		}
		// Try to split at a newline
		if idx := strings.LastIndex(s[:end], "\n"); idx > 0 {
			end = idx + 1
		}
		chunks = append(chunks, s[:end])
		s = s[end:]
	}
	return chunks
}
