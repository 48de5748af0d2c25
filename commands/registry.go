package commands

import (
	"sort"
	"strings"

	"otpbot/interfaces"
	"otpbot/reply"
	"otpbot/router"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"
)

// AppContext provides dependencies to commands.
type AppContext struct {
	Log   interfaces.Logger
	Store interfaces.UsageStore
}

// Registry routes commands to their handlers and component interactions to
// the handler that owns the component ID.
type Registry struct {
	log         interfaces.Logger
	handlers    map[router.Kind]CommandHandler
	components  map[string]CommandHandler
	prefixes    []string
	definitions []*discordgo.ApplicationCommand
}

// RegisterCommands initializes all command handlers.
func RegisterCommands(app *AppContext) *Registry {
	// To add a new command, simply add it to this list.
	commands := []CommandHandler{
		&StartCommand{},
		&OtpCommand{Log: app.Log},
		&PasswordCommand{Log: app.Log},
		NewTwoFactorCommand(app.Log),
		&UnknownCommand{},
	}

	r := &Registry{
		log:        app.Log,
		handlers:   make(map[router.Kind]CommandHandler),
		components: make(map[string]CommandHandler),
	}

	for _, cmd := range commands {
		handler := cmd
		if app.Store != nil {
			handler = &CommandUsageWrapper{CommandHandler: cmd, Store: app.Store, Log: app.Log}
		}
		r.handlers[cmd.Intent()] = handler
		for _, id := range cmd.GetComponentIDs() {
			r.components[id] = handler
		}
	}

	r.definitions = lo.FilterMap(commands, func(cmd CommandHandler, _ int) (*discordgo.ApplicationCommand, bool) {
		def := cmd.GetCommandDef()
		return def, def != nil
	})

	// longest prefix first so "2fa_confirm" never falls to "2fa"
	r.prefixes = lo.Keys(r.components)
	sort.Slice(r.prefixes, func(a, b int) bool {
		if len(r.prefixes[a]) != len(r.prefixes[b]) {
			return len(r.prefixes[a]) > len(r.prefixes[b])
		}
		return r.prefixes[a] < r.prefixes[b]
	})

	return r
}

// Definitions returns the slash commands to register with Discord.
func (r *Registry) Definitions() []*discordgo.ApplicationCommand {
	return r.definitions
}

// Handlers returns the registered handlers ordered by intent.
func (r *Registry) Handlers() []CommandHandler {
	kinds := lo.Keys(r.handlers)
	sort.Slice(kinds, func(a, b int) bool { return kinds[a] < kinds[b] })
	return lo.Map(kinds, func(k router.Kind, _ int) CommandHandler { return r.handlers[k] })
}

// Dispatch routes cmd and executes the matching handler.
func (r *Registry) Dispatch(cmd router.Command) (router.Intent, reply.Reply) {
	intent := router.Route(cmd)
	h, ok := r.handlers[intent.Kind]
	if !ok {
		h = r.handlers[router.Unknown]
	}
	return intent, h.Execute(intent)
}

func (r *Registry) componentHandler(customID string) (CommandHandler, bool) {
	if h, ok := r.components[customID]; ok {
		return h, true
	}
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(customID, prefix) {
			return r.components[prefix], true
		}
	}
	return nil, false
}

// HandleComponent dispatches a button press.
func (r *Registry) HandleComponent(rs interfaces.Responder, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	h, ok := r.componentHandler(customID)
	if !ok {
		r.log.Warn("Unknown component interaction received", "customID", customID)
		return
	}
	h.HandleComponent(rs, i)
}

// HandleModal dispatches a modal submission.
func (r *Registry) HandleModal(rs interfaces.Responder, i *discordgo.InteractionCreate) {
	customID := i.ModalSubmitData().CustomID
	h, ok := r.componentHandler(customID)
	if !ok {
		r.log.Warn("Unknown modal submission received", "customID", customID)
		return
	}
	h.HandleModal(rs, i)
}

// CommandUsageWrapper は、コマンドの実行をラップして使用状況を記録します。
type CommandUsageWrapper struct {
	CommandHandler
	Store interfaces.UsageStore
	Log   interfaces.Logger
}

// Execute は、元のハンドラを呼び出す前に使用状況を記録します。
func (w *CommandUsageWrapper) Execute(intent router.Intent) reply.Reply {
	if err := w.Store.IncrementCommandUsage(intent.Kind.String()); err != nil {
		w.Log.Warn("Failed to record command usage", "error", err, "intent", intent.Kind.String())
	}
	return w.CommandHandler.Execute(intent)
}
