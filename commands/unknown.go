package commands

import (
	"otpbot/interfaces"
	"otpbot/reply"
	"otpbot/router"

	"github.com/bwmarrin/discordgo"
)

// UnknownCommand answers everything the router could not match.
type UnknownCommand struct{}

func (c *UnknownCommand) GetCommandDef() *discordgo.ApplicationCommand { return nil }
func (c *UnknownCommand) Intent() router.Kind                          { return router.Unknown }

func (c *UnknownCommand) Execute(intent router.Intent) reply.Reply {
	return reply.Format(reply.Result{Kind: router.Unknown})
}

func (c *UnknownCommand) HandleComponent(r interfaces.Responder, i *discordgo.InteractionCreate) {}
func (c *UnknownCommand) HandleModal(r interfaces.Responder, i *discordgo.InteractionCreate)     {}
func (c *UnknownCommand) GetComponentIDs() []string                                            { return []string{} }
func (c *UnknownCommand) GetCategory() string                                                  { return "" }
