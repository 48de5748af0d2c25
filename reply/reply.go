// Package reply builds the transport-neutral replies sent back for each
// routed command.
package reply

import (
	"fmt"
	"strings"

	"otpbot/router"
	"otpbot/secret"
)

// ControlKind は返信に付けるボタンの種類です。
type ControlKind int

const (
	// ControlCopy hands the raw Payload back to the user.
	ControlCopy ControlKind = iota
	// ControlAction triggers a follow-up identified by ID.
	ControlAction
)

// Component IDs shared with the transport.
const (
	CopyOtpID      = "copy_otp"
	CopyPasswordID = "copy_password"
	RevealID       = "2fa"
)

// Control is one interactive button attached to a reply.
type Control struct {
	Kind    ControlKind
	ID      string
	Label   string
	Payload string
	Confirm bool
}

// Reply is what the transport sends for a command. Label is the short
// headline of Text and is used when Text cannot be sent as-is.
type Reply struct {
	Text     string
	Label    string
	Controls []Control
}

// CopyControl returns the first copy control of the reply, if any.
func (r Reply) CopyControl() (Control, bool) {
	for _, c := range r.Controls {
		if c.Kind == ControlCopy {
			return c, true
		}
	}
	return Control{}, false
}

// Result is the outcome of executing one intent.
type Result struct {
	Kind   router.Kind
	Secret string
	Err    error
}

const (
	startText = "👋 **Welcome to the Bot!**\n\n" +
		"I'm here to assist you with various utilities like generating OTPs and secure passwords.\n\n" +
		"**💡 Here are some commands to get started:**\n" +
		"• `/otp [length]` - Generate a one-time password with a custom length (default: 4 digits).\n" +
		"• `/password [length]` - Create a secure password with a custom length (default: 8 characters).\n\n" +
		"**Examples:**\n" +
		"• `/otp 6` - Generates a 6-digit OTP.\n" +
		"• `/password 12` - Creates a 12-character secure password.\n\n" +
		"**Need help?** Feel free to reach out or type `/help` to see all available commands!"

	unknownText    = "❓ Unknown command. Try using `/start`, `/otp`, or `/password`."
	failureText    = "⚠️ Something went wrong while generating your secret. Please try again."
	revealOffer    = "Two factor example"
	revealText     = "Super secret text"
	revealedText   = "This secret has already been revealed."
	invalidLengthF = "❌ Invalid length. Please provide a length between %d and %d."
)

type secretStyle struct {
	profile   secret.Profile
	label     string
	copyID    string
	copyLabel string
}

var secretStyles = map[router.Kind]secretStyle{
	router.GenerateOtp:      {profile: secret.OTP, label: "🔢 **Your OTP:**", copyID: CopyOtpID, copyLabel: "Copy OTP"},
	router.GeneratePassword: {profile: secret.Password, label: "🔑 **Your Password:**", copyID: CopyPasswordID, copyLabel: "Copy Password"},
}

// Format maps an intent result to the reply shown to the user.
func Format(res Result) Reply {
	switch res.Kind {
	case router.Start:
		return Reply{Text: startText, Label: "👋 **Welcome to the Bot!**"}
	case router.RevealHidden:
		return Reply{
			Text:  revealOffer,
			Label: revealOffer,
			Controls: []Control{
				{Kind: ControlAction, ID: RevealID, Label: "Show", Confirm: true},
			},
		}
	case router.GenerateOtp, router.GeneratePassword:
		return formatSecret(secretStyles[res.Kind], res)
	default:
		return Reply{Text: unknownText, Label: unknownText}
	}
}

func formatSecret(style secretStyle, res Result) Reply {
	if res.Err != nil {
		if secret.IsValidationError(res.Err) {
			text := fmt.Sprintf(invalidLengthF, style.profile.Length.Min, style.profile.Length.Max)
			return Reply{Text: text, Label: text}
		}
		return Reply{Text: failureText, Label: failureText}
	}
	return Reply{
		Text:  style.label + "\n" + CodeBlock(res.Secret),
		Label: style.label,
		Controls: []Control{
			{Kind: ControlCopy, ID: style.copyID, Label: style.copyLabel, Payload: res.Secret},
		},
	}
}

// Reveal returns the fixed disclosure shown once a hidden offer is confirmed.
func Reveal() string {
	return revealText
}

// AlreadyRevealed is the notice for activating an offer a second time.
func AlreadyRevealed() string {
	return revealedText
}

const (
	fence    = "```"
	zeroSpan = "\u200b"
)

// CodeBlock renders s as a fenced, fixed-width block. A zero-width space is
// placed after every backtick so s can never contain the closing fence.
func CodeBlock(s string) string {
	return fence + "\n" + strings.ReplaceAll(s, "`", "`"+zeroSpan) + "\n" + fence
}

// ExtractCode recovers the raw value of the first code block in text, undoing
// CodeBlock. ok is false when text has no complete block.
func ExtractCode(text string) (string, bool) {
	start := strings.Index(text, fence+"\n")
	if start < 0 {
		return "", false
	}
	body := text[start+len(fence)+1:]
	end := strings.LastIndex(body, "\n"+fence)
	if end < 0 {
		return "", false
	}
	return strings.ReplaceAll(body[:end], zeroSpan, ""), true
}
