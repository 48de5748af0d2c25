package commands

import (
	"otpbot/interfaces"
	"otpbot/reply"
	"otpbot/router"
	"otpbot/secret"

	"github.com/bwmarrin/discordgo"
)

// PasswordCommand は英数字と記号からなるパスワードを生成します。
type PasswordCommand struct {
	Log interfaces.Logger
}

func (c *PasswordCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "password",
		Description: "🔑 Generate a secure password",
		Options: []*discordgo.ApplicationCommandOption{
			lengthOption("Number of characters (1-4096, default 8)"),
		},
	}
}

func (c *PasswordCommand) Intent() router.Kind { return router.GeneratePassword }

func (c *PasswordCommand) Execute(intent router.Intent) reply.Reply {
	password, err := secret.Generate(secret.Password, intent.Length)
	if err != nil && !secret.IsValidationError(err) {
		c.Log.Error("Failed to generate password", "error", err)
	}
	return reply.Format(reply.Result{Kind: router.GeneratePassword, Secret: password, Err: err})
}

func (c *PasswordCommand) HandleComponent(r interfaces.Responder, i *discordgo.InteractionCreate) {
	handleCopy(r, i, c.Log)
}

func (c *PasswordCommand) HandleModal(r interfaces.Responder, i *discordgo.InteractionCreate) {}
func (c *PasswordCommand) GetComponentIDs() []string {
	return []string{reply.CopyPasswordID}
}
func (c *PasswordCommand) GetCategory() string { return "generator" }
