package commands

import (
	"otpbot/interfaces"
	"otpbot/reply"
	"otpbot/router"

	"github.com/bwmarrin/discordgo"
)

type StartCommand struct{}

func (c *StartCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "start",
		Description: "🤖 Start the bot",
	}
}

func (c *StartCommand) Intent() router.Kind { return router.Start }

func (c *StartCommand) Execute(intent router.Intent) reply.Reply {
	return reply.Format(reply.Result{Kind: router.Start})
}

func (c *StartCommand) HandleComponent(r interfaces.Responder, i *discordgo.InteractionCreate) {}
func (c *StartCommand) HandleModal(r interfaces.Responder, i *discordgo.InteractionCreate)     {}
func (c *StartCommand) GetComponentIDs() []string                                            { return []string{} }
func (c *StartCommand) GetCategory() string                                                  { return "general" }
