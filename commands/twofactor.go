package commands

import (
	"strings"
	"sync"

	"otpbot/interfaces"
	"otpbot/reply"
	"otpbot/router"

	"github.com/bwmarrin/discordgo"
)

const (
	revealConfirmModalID = reply.RevealID + "_confirm"
	revealPhraseInputID  = "reveal_phrase"
	revealPhrase         = "SHOW"
)

// RevealState は隠しコンテンツの状態です。Offered -> Revealed の一方向のみ遷移します。
type RevealState int

const (
	Offered RevealState = iota
	Revealed
)

// TwoFactorCommand offers hidden content behind a Show button. The button
// asks for confirmation in a modal, reveals the text ephemerally once and
// is then disabled on the offering message.
type TwoFactorCommand struct {
	Log interfaces.Logger

	// Show ボタンが確認モーダルを経由するか
	confirm bool

	// offering message IDs already revealed by this process
	revealed sync.Map
}

func NewTwoFactorCommand(log interfaces.Logger) *TwoFactorCommand {
	c := &TwoFactorCommand{Log: log}
	for _, ctl := range reply.Format(reply.Result{Kind: router.RevealHidden}).Controls {
		if ctl.ID == reply.RevealID {
			c.confirm = ctl.Confirm
		}
	}
	return c
}

// Not registered as a slash command; reachable as a text command only.
func (c *TwoFactorCommand) GetCommandDef() *discordgo.ApplicationCommand { return nil }

func (c *TwoFactorCommand) Intent() router.Kind { return router.RevealHidden }

func (c *TwoFactorCommand) Execute(intent router.Intent) reply.Reply {
	return reply.Format(reply.Result{Kind: router.RevealHidden})
}

func (c *TwoFactorCommand) HandleComponent(r interfaces.Responder, i *discordgo.InteractionCreate) {
	if c.state(i.Message) == Revealed {
		if err := respondEphemeral(r, i, reply.AlreadyRevealed()); err != nil {
			c.Log.Error("Failed to send already-revealed notice", "error", err)
		}
		return
	}
	if !c.confirm {
		c.reveal(r, i)
		return
	}

	err := r.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: revealConfirmModalID,
			Title:    "Confirm reveal",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    revealPhraseInputID,
						Label:       "Type " + revealPhrase + " to reveal the secret",
						Style:       discordgo.TextInputShort,
						Placeholder: revealPhrase,
						Required:    true,
						MaxLength:   16,
					},
				}},
			},
		},
	})
	if err != nil {
		c.Log.Error("Failed to show reveal confirmation modal", "error", err)
	}
}

func (c *TwoFactorCommand) HandleModal(r interfaces.Responder, i *discordgo.InteractionCreate) {
	if !strings.EqualFold(strings.TrimSpace(modalValue(i.ModalSubmitData())), revealPhrase) {
		if err := respondEphemeral(r, i, "❌ Confirmation failed. Nothing was revealed."); err != nil {
			c.Log.Error("Failed to send confirmation failure", "error", err)
		}
		return
	}
	c.reveal(r, i)
}

// reveal moves the offer to Revealed, answers ephemerally and disables the
// Show button on the offering message.
func (c *TwoFactorCommand) reveal(r interfaces.Responder, i *discordgo.InteractionCreate) {
	if !c.transition(i.Message) {
		if err := respondEphemeral(r, i, reply.AlreadyRevealed()); err != nil {
			c.Log.Error("Failed to send already-revealed notice", "error", err)
		}
		return
	}

	if err := respondEphemeral(r, i, reply.Reveal()); err != nil {
		c.Log.Error("Failed to reveal hidden content", "error", err)
		return
	}

	if i.Message == nil {
		return
	}
	components := disableReveal(i.Message.Components)
	if _, err := r.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         i.Message.ID,
		Channel:    i.Message.ChannelID,
		Components: &components,
	}); err != nil {
		c.Log.Warn("Failed to disable reveal button", "error", err, "messageID", i.Message.ID)
	}
}

func (c *TwoFactorCommand) GetComponentIDs() []string {
	return []string{reply.RevealID, revealConfirmModalID}
}

func (c *TwoFactorCommand) GetCategory() string { return "demo" }

// state reads the offer state from the message: a disabled Show button, or a
// message this process already revealed, is Revealed.
func (c *TwoFactorCommand) state(msg *discordgo.Message) RevealState {
	if msg == nil {
		return Offered
	}
	if _, ok := c.revealed.Load(msg.ID); ok {
		return Revealed
	}
	if btn := findButton(msg.Components, reply.RevealID); btn != nil && btn.Disabled {
		return Revealed
	}
	return Offered
}

// transition moves the offer to Revealed and reports whether this call did it.
func (c *TwoFactorCommand) transition(msg *discordgo.Message) bool {
	if msg == nil {
		return true
	}
	if c.state(msg) == Revealed {
		return false
	}
	_, loaded := c.revealed.LoadOrStore(msg.ID, struct{}{})
	return !loaded
}

func modalValue(data discordgo.ModalSubmitInteractionData) string {
	for _, comp := range data.Components {
		row, ok := comp.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok && input.CustomID == revealPhraseInputID {
				return input.Value
			}
		}
	}
	return ""
}

func rowComponents(comp discordgo.MessageComponent) ([]discordgo.MessageComponent, bool) {
	switch row := comp.(type) {
	case *discordgo.ActionsRow:
		return row.Components, true
	case discordgo.ActionsRow:
		return row.Components, true
	}
	return nil, false
}

func asButton(comp discordgo.MessageComponent) (discordgo.Button, bool) {
	switch b := comp.(type) {
	case *discordgo.Button:
		return *b, true
	case discordgo.Button:
		return b, true
	}
	return discordgo.Button{}, false
}

func findButton(components []discordgo.MessageComponent, customID string) *discordgo.Button {
	for _, comp := range components {
		inner, ok := rowComponents(comp)
		if !ok {
			continue
		}
		for _, c := range inner {
			if btn, ok := asButton(c); ok && btn.CustomID == customID {
				return &btn
			}
		}
	}
	return nil
}

// disableReveal copies the message components with the Show button disabled.
func disableReveal(components []discordgo.MessageComponent) []discordgo.MessageComponent {
	out := make([]discordgo.MessageComponent, 0, len(components))
	for _, comp := range components {
		inner, ok := rowComponents(comp)
		if !ok {
			out = append(out, comp)
			continue
		}
		row := discordgo.ActionsRow{}
		for _, c := range inner {
			if btn, ok := asButton(c); ok && btn.CustomID == reply.RevealID {
				btn.Disabled = true
				btn.Label = "Revealed"
				row.Components = append(row.Components, btn)
				continue
			}
			row.Components = append(row.Components, c)
		}
		out = append(out, row)
	}
	return out
}
