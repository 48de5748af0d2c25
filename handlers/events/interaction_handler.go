package events

import (
	"fmt"

	"otpbot/commands"
	"otpbot/interfaces"
	"otpbot/reply"
	"otpbot/router"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// OnInteractionCreate は、すべてのインタラクションを処理する中央ハブです。
func OnInteractionCreate(rs interfaces.Responder, i *discordgo.InteractionCreate, d Dispatcher, log interfaces.Logger) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		cmd := CommandFromInteraction(i.ApplicationCommandData())
		handle(cmd, d, log, "slash", func(r reply.Reply) error {
			return rs.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: commands.ToResponseData(r),
			})
		})
	case discordgo.InteractionMessageComponent:
		d.HandleComponent(rs, i)
	case discordgo.InteractionModalSubmit:
		d.HandleModal(rs, i)
	}
}

// CommandFromInteraction converts slash command data into the same Command
// shape a text message produces.
func CommandFromInteraction(data discordgo.ApplicationCommandInteractionData) router.Command {
	cmd := router.Command{Name: data.Name}
	for _, opt := range data.Options {
		if opt == nil {
			continue
		}
		if opt.Type == discordgo.ApplicationCommandOptionString {
			cmd.Arguments = append(cmd.Arguments, opt.StringValue())
			continue
		}
		cmd.Arguments = append(cmd.Arguments, fmt.Sprint(opt.Value))
	}
	return cmd
}

// handle runs one command through the registry and sends the reply.
// The secret itself is never logged.
func handle(cmd router.Command, d Dispatcher, log interfaces.Logger, source string, send func(reply.Reply) error) {
	log = log.With("request_id", uuid.NewString(), "source", source)
	intent, r := d.Dispatch(cmd)
	if err := send(r); err != nil {
		log.Error("Failed to send reply", "intent", intent.Kind.String(), "error", err)
		return
	}
	log.Info("Command handled",
		"command", cmd.Name,
		"args", len(cmd.Arguments),
		"intent", intent.Kind.String(),
		"outcome", outcome(intent, r),
	)
}
