package commands

import (
	"strings"
	"unicode/utf8"

	"otpbot/reply"

	"github.com/bwmarrin/discordgo"
)

const (
	// Discord の上限
	messageLimit  = 2000
	customIDLimit = 100
)

var copyFileNames = map[string]string{
	reply.CopyOtpID:      "otp.txt",
	reply.CopyPasswordID: "password.txt",
}

func noMentions() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
}

// copyCustomID embeds the payload in the button ID when it fits. Otherwise the
// payload is recovered from the message text when the button is pressed.
func copyCustomID(c reply.Control) string {
	id := c.ID + ":" + c.Payload
	if len(id) > customIDLimit {
		return c.ID
	}
	return id
}

func buttons(controls []reply.Control) []discordgo.MessageComponent {
	if len(controls) == 0 {
		return nil
	}
	row := discordgo.ActionsRow{}
	for _, c := range controls {
		switch c.Kind {
		case reply.ControlCopy:
			row.Components = append(row.Components, discordgo.Button{
				Label:    c.Label,
				Style:    discordgo.SecondaryButton,
				Emoji:    &discordgo.ComponentEmoji{Name: "📋"},
				CustomID: copyCustomID(c),
			})
		case reply.ControlAction:
			btn := discordgo.Button{
				Label:    c.Label,
				Style:    discordgo.PrimaryButton,
				CustomID: c.ID,
			}
			if c.Confirm {
				// 確認付きのボタンは鍵アイコンで区別する
				btn.Emoji = &discordgo.ComponentEmoji{Name: "🔒"}
			}
			row.Components = append(row.Components, btn)
		}
	}
	return []discordgo.MessageComponent{row}
}

// rendered is the Discord form of a reply, shared by channel messages and
// interaction responses.
type rendered struct {
	content    string
	components []discordgo.MessageComponent
	files      []*discordgo.File
}

func render(r reply.Reply) rendered {
	if utf8.RuneCountInString(r.Text) <= messageLimit {
		return rendered{content: r.Text, components: buttons(r.Controls)}
	}

	// Too long for one message: send the label and the raw value as a text
	// file. The file is the copy, so the button is dropped.
	c, ok := r.CopyControl()
	if !ok {
		return rendered{content: string([]rune(r.Text)[:messageLimit])}
	}
	name := copyFileNames[c.ID]
	return rendered{
		content: r.Label + " (attached as `" + name + "`)",
		files: []*discordgo.File{{
			Name:        name,
			ContentType: "text/plain",
			Reader:      strings.NewReader(c.Payload),
		}},
	}
}

// ToMessageSend converts a reply into a channel message answering ref.
func ToMessageSend(r reply.Reply, ref *discordgo.MessageReference) *discordgo.MessageSend {
	out := render(r)
	return &discordgo.MessageSend{
		Content:         out.content,
		Components:      out.components,
		Files:           out.files,
		Reference:       ref,
		AllowedMentions: noMentions(),
	}
}

// ToResponseData converts a reply into an interaction response payload.
func ToResponseData(r reply.Reply) *discordgo.InteractionResponseData {
	out := render(r)
	return &discordgo.InteractionResponseData{
		Content:         out.content,
		Components:      out.components,
		Files:           out.files,
		AllowedMentions: noMentions(),
	}
}
