package events

import (
	"strings"

	"otpbot/commands"
	"otpbot/interfaces"
	"otpbot/reply"
	"otpbot/router"

	"github.com/bwmarrin/discordgo"
)

// OnMessageCreate handles prefixed text commands. In direct messages every
// message is treated as a command attempt; in guilds only prefixed ones are.
func OnMessageCreate(sender MessageSender, selfID string, m *discordgo.MessageCreate, prefix string, d Dispatcher, log interfaces.Logger) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == selfID {
		return
	}
	if !ShouldHandle(m.GuildID, m.Content, prefix) {
		return
	}

	cmd := router.Parse(m.Content, prefix)
	handle(cmd, d, log, "message", func(r reply.Reply) error {
		_, err := sender.ChannelMessageSendComplex(m.ChannelID, commands.ToMessageSend(r, m.Reference()))
		return err
	})
}

// ShouldHandle reports whether a message is addressed to the bot.
func ShouldHandle(guildID, content, prefix string) bool {
	if guildID == "" {
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(content), prefix)
}

func outcome(intent router.Intent, r reply.Reply) string {
	switch {
	case intent.Kind == router.Unknown:
		return "unknown"
	case (intent.Kind == router.GenerateOtp || intent.Kind == router.GeneratePassword) && !hasCopy(r):
		return "rejected"
	default:
		return "ok"
	}
}

func hasCopy(r reply.Reply) bool {
	_, ok := r.CopyControl()
	return ok
}
