package commands

import (
	"strings"

	"otpbot/interfaces"
	"otpbot/reply"

	"github.com/bwmarrin/discordgo"
)

// copyPayload returns the raw secret behind a copy button: from the custom ID
// when it was embedded, otherwise from the code block of the message.
func copyPayload(customID string, msg *discordgo.Message) (id, payload string, ok bool) {
	id, payload, embedded := strings.Cut(customID, ":")
	if embedded {
		return id, payload, true
	}
	if msg == nil {
		return id, "", false
	}
	payload, ok = reply.ExtractCode(msg.Content)
	return id, payload, ok
}

// handleCopy answers a copy button with the raw secret as an ephemeral text
// file, so nothing markdown-escaped ends up on the clipboard.
func handleCopy(r interfaces.Responder, i *discordgo.InteractionCreate, log interfaces.Logger) {
	id, payload, ok := copyPayload(i.MessageComponentData().CustomID, i.Message)
	if !ok {
		if err := respondEphemeral(r, i, "❌ This value is no longer available to copy."); err != nil {
			log.Error("Failed to respond to copy button", "error", err)
		}
		return
	}

	name := copyFileNames[id]
	if name == "" {
		name = "secret.txt"
	}
	err := r.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "📋 Here is the raw value, ready to copy.",
			Files: []*discordgo.File{{
				Name:        name,
				ContentType: "text/plain",
				Reader:      strings.NewReader(payload),
			}},
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: noMentions(),
		},
	})
	if err != nil {
		log.Error("Failed to respond to copy button", "error", err, "component", id)
	}
}
