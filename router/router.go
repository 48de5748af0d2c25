// Package router classifies chat commands into intents.
package router

import "strings"

// Kind はコマンドから導かれる意図の種類です。
type Kind int

const (
	Unknown Kind = iota
	Start
	GenerateOtp
	GeneratePassword
	RevealHidden
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "start"
	case GenerateOtp:
		return "otp"
	case GeneratePassword:
		return "password"
	case RevealHidden:
		return "2fa"
	default:
		return "unknown"
	}
}

// Command is one user-issued command: the first token without its prefix and
// the remaining whitespace-separated tokens.
type Command struct {
	Name      string
	Arguments []string
}

// Intent is the routed form of a Command. Length is only set for the
// generate kinds and is not validated here.
type Intent struct {
	Kind   Kind
	Length string
}

type rule struct {
	name          string
	arity         int
	kind          Kind
	defaultLength string
}

// 上から順に (name, arity) で照合する。引数の数が合わない既知コマンドは Unknown になる。
var rules = []rule{
	{name: "start", arity: 0, kind: Start},
	{name: "otp", arity: 1, kind: GenerateOtp},
	{name: "otp", arity: 0, kind: GenerateOtp, defaultLength: "4"},
	{name: "password", arity: 1, kind: GeneratePassword},
	{name: "password", arity: 0, kind: GeneratePassword, defaultLength: "8"},
	{name: "2fa", arity: 0, kind: RevealHidden},
}

// Route maps a command to exactly one intent.
func Route(cmd Command) Intent {
	for _, r := range rules {
		if r.name != cmd.Name || r.arity != len(cmd.Arguments) {
			continue
		}
		intent := Intent{Kind: r.kind, Length: r.defaultLength}
		if r.arity == 1 {
			intent.Length = cmd.Arguments[0]
		}
		return intent
	}
	return Intent{Kind: Unknown}
}

// Parse splits raw message text into a Command. The first word must be the
// prefix immediately followed by the name; anything else yields the zero
// Command. Names are matched case-insensitively.
func Parse(text, prefix string) Command {
	fields := strings.Fields(text)
	if prefix == "" || len(fields) == 0 || !strings.HasPrefix(fields[0], prefix) {
		return Command{}
	}
	name := strings.TrimPrefix(fields[0], prefix)
	if name == "" {
		return Command{}
	}
	return Command{Name: strings.ToLower(name), Arguments: fields[1:]}
}
