package commands

import (
	"otpbot/interfaces"
	"otpbot/reply"
	"otpbot/router"
	"otpbot/secret"

	"github.com/bwmarrin/discordgo"
)

// OtpCommand は数字のみのワンタイムパスワードを生成します。
type OtpCommand struct {
	Log interfaces.Logger
}

func (c *OtpCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "otp",
		Description: "📨 Send a one-time password",
		Options: []*discordgo.ApplicationCommandOption{
			lengthOption("Number of digits (1-8, default 4)"),
		},
	}
}

func (c *OtpCommand) Intent() router.Kind { return router.GenerateOtp }

func (c *OtpCommand) Execute(intent router.Intent) reply.Reply {
	otp, err := secret.Generate(secret.OTP, intent.Length)
	if err != nil && !secret.IsValidationError(err) {
		c.Log.Error("Failed to generate OTP", "error", err)
	}
	return reply.Format(reply.Result{Kind: router.GenerateOtp, Secret: otp, Err: err})
}

func (c *OtpCommand) HandleComponent(r interfaces.Responder, i *discordgo.InteractionCreate) {
	handleCopy(r, i, c.Log)
}

func (c *OtpCommand) HandleModal(r interfaces.Responder, i *discordgo.InteractionCreate) {}
func (c *OtpCommand) GetComponentIDs() []string                                        { return []string{reply.CopyOtpID} }
func (c *OtpCommand) GetCategory() string                                              { return "generator" }
