package events

import (
	"otpbot/interfaces"
	"otpbot/reply"
	"otpbot/router"

	"github.com/bwmarrin/discordgo"
)

// Dispatcher is the part of the command registry the event handlers use.
type Dispatcher interface {
	Dispatch(cmd router.Command) (router.Intent, reply.Reply)
	HandleComponent(rs interfaces.Responder, i *discordgo.InteractionCreate)
	HandleModal(rs interfaces.Responder, i *discordgo.InteractionCreate)
}

// MessageSender は、テキストコマンドへの返信送信に使う Session の部分集合です。
type MessageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}
