package commands

import (
	"io"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/cockroachdb/errors"
)

type fakeResponder struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
	files     map[string]string
	edits     []*discordgo.MessageEdit
	failEdit  bool
}

func newFakeResponder() *fakeResponder {
	return &fakeResponder{files: make(map[string]string)}
}

func (f *fakeResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if resp.Data != nil {
		for _, file := range resp.Data.Files {
			b, err := io.ReadAll(file.Reader)
			if err != nil {
				return err
			}
			f.files[file.Name] = string(b)
		}
	}
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeResponder) ChannelMessageEditComplex(m *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failEdit {
		return nil, errors.New("edit failed")
	}
	f.edits = append(f.edits, m)
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel}, nil
}

func (f *fakeResponder) last() *discordgo.InteractionResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.responses) == 0 {
		return nil
	}
	return f.responses[len(f.responses)-1]
}

type fakeStore struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

func newFakeStore() *fakeStore { return &fakeStore{counts: make(map[string]int)} }

func (s *fakeStore) Close()        {}
func (s *fakeStore) PingDB() error { return nil }

func (s *fakeStore) IncrementCommandUsage(intent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.counts[intent]++
	return nil
}

func (s *fakeStore) GetCommandUsage() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out, nil
}

func (s *fakeStore) GetAndResetCommandUsage() (map[string]int, error) {
	out, _ := s.GetCommandUsage()
	s.mu.Lock()
	s.counts = make(map[string]int)
	s.mu.Unlock()
	return out, nil
}

func componentInteraction(customID string, msg *discordgo.Message) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:    discordgo.InteractionMessageComponent,
		Data:    discordgo.MessageComponentInteractionData{CustomID: customID, ComponentType: discordgo.ButtonComponent},
		Message: msg,
	}}
}

func modalInteraction(customID, value string, msg *discordgo.Message) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionModalSubmit,
		Data: discordgo.ModalSubmitInteractionData{
			CustomID: customID,
			Components: []discordgo.MessageComponent{
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: revealPhraseInputID, Value: value},
				}},
			},
		},
		Message: msg,
	}}
}
