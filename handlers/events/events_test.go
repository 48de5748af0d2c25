package events

import (
	"strings"
	"testing"

	"otpbot/commands"
	"otpbot/interfaces"
	"otpbot/logger"
	"otpbot/router"

	"github.com/bwmarrin/discordgo"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	channelID string
	data      *discordgo.MessageSend
}

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, sent{channelID: channelID, data: data})
	return &discordgo.Message{ChannelID: channelID, Content: data.Content}, nil
}

type fakeResponder struct {
	responses []*discordgo.InteractionResponse
}

func (f *fakeResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeResponder) ChannelMessageEditComplex(m *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel}, nil
}

func newRegistry() *commands.Registry {
	return commands.RegisterCommands(&commands.AppContext{Log: logger.Discard()})
}

func message(guildID, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   guildID,
		Content:   content,
		Author:    &discordgo.User{ID: "u1"},
	}}
}

func TestShouldHandle(t *testing.T) {
	tests := []struct {
		name    string
		guildID string
		content string
		want    bool
	}{
		{"dm plain text", "", "hello", true},
		{"dm command", "", "/otp", true},
		{"guild command", "g1", "/otp 6", true},
		{"guild command with leading space", "g1", "  /otp", true},
		{"guild chatter", "g1", "hello", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldHandle(tt.guildID, tt.content, "/"))
		})
	}
}

func TestOnMessageCreateRepliesWithOtp(t *testing.T) {
	s := &fakeSender{}
	OnMessageCreate(s, "bot", message("g1", "/otp 6"), "/", newRegistry(), logger.Discard())

	require.Len(t, s.sent, 1)
	got := s.sent[0]
	assert.Equal(t, "c1", got.channelID)
	assert.Contains(t, got.data.Content, "Your OTP")
	require.NotNil(t, got.data.Reference)
	assert.Equal(t, "m1", got.data.Reference.MessageID)
	assert.Len(t, got.data.Components, 1)
}

func TestOnMessageCreateRejectsBadLength(t *testing.T) {
	s := &fakeSender{}
	OnMessageCreate(s, "bot", message("", "/password 0"), "/", newRegistry(), logger.Discard())

	require.Len(t, s.sent, 1)
	assert.Equal(t, "❌ Invalid length. Please provide a length between 1 and 4096.", s.sent[0].data.Content)
	assert.Empty(t, s.sent[0].data.Components)
}

func TestOnMessageCreateUnknownInDM(t *testing.T) {
	s := &fakeSender{}
	OnMessageCreate(s, "bot", message("", "foobar"), "/", newRegistry(), logger.Discard())

	require.Len(t, s.sent, 1)
	assert.Contains(t, s.sent[0].data.Content, "Unknown command")
}

func TestOnMessageCreateIgnores(t *testing.T) {
	tests := []struct {
		name string
		msg  *discordgo.MessageCreate
	}{
		{"own message", func() *discordgo.MessageCreate {
			m := message("", "/otp")
			m.Author.ID = "bot"
			return m
		}()},
		{"other bot", func() *discordgo.MessageCreate {
			m := message("", "/otp")
			m.Author.Bot = true
			return m
		}()},
		{"no author", func() *discordgo.MessageCreate {
			m := message("", "/otp")
			m.Author = nil
			return m
		}()},
		{"guild chatter", message("g1", "good morning")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSender{}
			OnMessageCreate(s, "bot", tt.msg, "/", newRegistry(), logger.Discard())
			assert.Empty(t, s.sent)
		})
	}
}

func TestOnMessageCreateSendFailureIsNotRetried(t *testing.T) {
	s := &fakeSender{err: errors.New("missing access")}
	OnMessageCreate(s, "bot", message("", "/otp"), "/", newRegistry(), logger.Discard())
	assert.Empty(t, s.sent)
}

func TestCommandFromInteraction(t *testing.T) {
	tests := []struct {
		name string
		data discordgo.ApplicationCommandInteractionData
		want router.Command
	}{
		{
			name: "no options",
			data: discordgo.ApplicationCommandInteractionData{Name: "start"},
			want: router.Command{Name: "start"},
		},
		{
			name: "string option",
			data: discordgo.ApplicationCommandInteractionData{
				Name: "otp",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "length", Type: discordgo.ApplicationCommandOptionString, Value: "6"},
				},
			},
			want: router.Command{Name: "otp", Arguments: []string{"6"}},
		},
		{
			name: "non string option",
			data: discordgo.ApplicationCommandInteractionData{
				Name: "password",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "length", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(12)},
				},
			},
			want: router.Command{Name: "password", Arguments: []string{"12"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommandFromInteraction(tt.data))
		})
	}
}

func TestOnInteractionCreateSlashCommand(t *testing.T) {
	rs := &fakeResponder{}
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:   "i1",
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: "password",
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "length", Type: discordgo.ApplicationCommandOptionString, Value: "16"},
			},
		},
	}}

	OnInteractionCreate(rs, i, newRegistry(), logger.Discard())

	require.Len(t, rs.responses, 1)
	resp := rs.responses[0]
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	assert.Contains(t, resp.Data.Content, "Your Password")
	assert.Len(t, resp.Data.Components, 1)
}

type record struct {
	msg  string
	args []any
}

// captureLogger keeps every record together with the args bound by With.
type captureLogger struct {
	bound   []any
	records *[]record
}

func newCaptureLogger() *captureLogger { return &captureLogger{records: &[]record{}} }

func (l *captureLogger) add(msg string, args []any) {
	all := append(append([]any{}, l.bound...), args...)
	*l.records = append(*l.records, record{msg: msg, args: all})
}

func (l *captureLogger) Debug(msg string, args ...any) { l.add(msg, args) }
func (l *captureLogger) Info(msg string, args ...any)  { l.add(msg, args) }
func (l *captureLogger) Warn(msg string, args ...any)  { l.add(msg, args) }
func (l *captureLogger) Error(msg string, args ...any) { l.add(msg, args) }
func (l *captureLogger) Fatal(msg string, args ...any) { l.add(msg, args) }

func (l *captureLogger) With(args ...any) interfaces.Logger {
	return &captureLogger{bound: append(append([]any{}, l.bound...), args...), records: l.records}
}

func attrs(args []any) map[string]any {
	out := make(map[string]any)
	for i := 0; i+1 < len(args); i += 2 {
		out[args[i].(string)] = args[i+1]
	}
	return out
}

func TestHandledCommandIsLoggedWithRequestID(t *testing.T) {
	log := newCaptureLogger()
	s := &fakeSender{}
	OnMessageCreate(s, "bot", message("", "/otp 6"), "/", newRegistry(), log)

	require.Len(t, *log.records, 1)
	rec := (*log.records)[0]
	assert.Equal(t, "Command handled", rec.msg)

	a := attrs(rec.args)
	assert.NotEmpty(t, a["request_id"])
	assert.Equal(t, "message", a["source"])
	assert.Equal(t, "otp", a["intent"])
	assert.Equal(t, "ok", a["outcome"])

	row, ok := s.sent[0].data.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	_, secret, _ := strings.Cut(row.Components[0].(discordgo.Button).CustomID, ":")
	require.Len(t, secret, 6)
	for _, v := range rec.args {
		assert.NotEqual(t, secret, v)
	}
}

func TestSendFailureIsLoggedWithRequestID(t *testing.T) {
	log := newCaptureLogger()
	OnMessageCreate(&fakeSender{err: errors.New("missing access")}, "bot", message("", "/otp"), "/", newRegistry(), log)

	require.Len(t, *log.records, 1)
	rec := (*log.records)[0]
	assert.Equal(t, "Failed to send reply", rec.msg)
	assert.NotEmpty(t, attrs(rec.args)["request_id"])
}
