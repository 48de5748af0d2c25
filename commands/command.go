// commands/command.go
package commands

import (
	"otpbot/interfaces"
	"otpbot/reply"
	"otpbot/router"

	"github.com/bwmarrin/discordgo"
)

// CommandHandler は、各インテントを処理するハンドラが実装すべきインターフェースです。
// GetCommandDef が nil を返すコマンドはスラッシュコマンドとして登録されません。
type CommandHandler interface {
	GetCommandDef() *discordgo.ApplicationCommand
	Intent() router.Kind
	Execute(intent router.Intent) reply.Reply
	HandleComponent(r interfaces.Responder, i *discordgo.InteractionCreate)
	HandleModal(r interfaces.Responder, i *discordgo.InteractionCreate)
	GetComponentIDs() []string
	GetCategory() string
}

func lengthOption(description string) *discordgo.ApplicationCommandOption {
	// String rather than Integer so malformed input reaches the generator and
	// gets the same rejection as a typed command.
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "length",
		Description: description,
		Required:    false,
	}
}

func respondEphemeral(r interfaces.Responder, i *discordgo.InteractionCreate, content string) error {
	return r.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         content,
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: noMentions(),
		},
	})
}
