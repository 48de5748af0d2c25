package events

import (
	"otpbot/interfaces"

	"github.com/bwmarrin/discordgo"
)

// OnReady は、Botの準備ができたときに呼び出され、ステータスを設定します。
func OnReady(s *discordgo.Session, r *discordgo.Ready, prefix string, log interfaces.Logger) {
	log.Info("Bot is ready", "user", r.User.String(), "guilds", len(r.Guilds))
	if err := s.UpdateGameStatus(0, prefix+"otp | "+prefix+"password"); err != nil {
		log.Warn("Failed to update status", "error", err)
	}
}
