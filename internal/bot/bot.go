package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ainutools/ainconv/internal/db"
	"github.com/ainutools/ainconv/internal/lexicon"
	"github.com/ainutools/ainconv/internal/metrics"
	"github.com/ainutools/ainconv/internal/transliteration"
	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"
)

const maxTextLength = 500

type Config struct {
	GuildID string
}

type Bot struct {
	log     Logger
	session DiscordSession
	conv    Converter
	// repo is nil when no lexicon is configured.
	repo    db.Repository
	limiter *RateLimiter
	config  Config
}

func New(log Logger, session DiscordSession, conv Converter, repo db.Repository, config Config) *Bot {
	return &Bot{
		log:     log,
		session: session,
		conv:    conv,
		repo:    repo,
		limiter: NewRateLimiter(),
		config:  config,
	}
}

func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.log.InfoContext(ctx, "connected to Discord", "username", r.User.Username)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening Discord connection: %w", err)
	}

	if err := b.registerCommands(ctx); err != nil {
		b.session.Close()
		return fmt.Errorf("registering commands: %w", err)
	}

	b.log.InfoContext(ctx, "bot is running, press Ctrl+C to stop")

	<-ctx.Done()
	b.log.Info("shutdown signal received")
	if err := b.session.Close(); err != nil {
		b.log.Warn("closing Discord session", "error", err)
	}
	b.log.Info("shut down complete")

	return nil
}

func (b *Bot) registerCommands(ctx context.Context) error {
	guildID := b.config.GuildID
	if guildID != "" {
		b.log.InfoContext(ctx, "registering commands to guild", "guild_id", guildID)
		_, err := b.session.ApplicationCommandBulkOverwrite(b.session.GetUserID(), "", []*discordgo.ApplicationCommand{})
		if err != nil {
			b.log.WarnContext(ctx, "failed to clear global commands", "error", err)
		} else {
			b.log.InfoContext(ctx, "cleared global commands")
		}
	} else {
		b.log.InfoContext(ctx, "registering commands globally (may take up to 1 hour to propagate)")
	}

	cmds := buildCommands(b.repo != nil)
	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.GetUserID(), guildID, cmds)
	if err != nil {
		return fmt.Errorf("bulk overwrite commands: %w", err)
	}
	b.log.InfoContext(ctx, "registered commands", "count", len(cmds))
	return nil
}

func textOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "text",
		Description: "Ainu text in Latin, Katakana or Cyrillic",
		Required:    true,
		MaxLength:   maxTextLength,
	}
}

// buildCommands lists the slash commands; /lookup only exists with a
// lexicon behind it.
func buildCommands(withLookup bool) []*discordgo.ApplicationCommand {
	cmds := []*discordgo.ApplicationCommand{
		{
			Name:        "ainu",
			Description: "Convert Ainu text to another script",
			Options: []*discordgo.ApplicationCommandOption{
				textOption(),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "to",
					Description: "Target script",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Latin", Value: "latn"},
						{Name: "Katakana", Value: "kana"},
						{Name: "Cyrillic", Value: "cyrl"},
					},
				},
			},
		},
		{
			Name:        "syllables",
			Description: "Split romanized Ainu words into syllables",
			Options:     []*discordgo.ApplicationCommandOption{textOption()},
		},
	}
	if withLookup {
		cmds = append(cmds, &discordgo.ApplicationCommand{
			Name:        "lookup",
			Description: "Look up a word in the lexicon",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "word",
					Description: "Headword in any script",
					Required:    true,
					MaxLength:   100,
				},
			},
		})
	}
	return cmds
}

type handlerResult struct {
	Response string
	Err      error
}

func (b *Bot) handleInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	b.handleCommand(i)
}

func (b *Bot) handleCommand(i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	cmd := i.ApplicationCommandData().Name

	if allowed, wait := b.limiter.Allow(interactionUserID(i)); !allowed {
		metrics.BotCommandsTotal.WithLabelValues(cmd, "rate_limited").Inc()
		b.respond(ctx, i, fmt.Sprintf("⏳ Slow down! Try again in %d seconds.", int(wait.Seconds())+1), true)
		return
	}

	options := i.ApplicationCommandData().Options
	var result handlerResult
	switch cmd {
	case "ainu":
		result = b.handleConvert(options)
	case "syllables":
		result = b.handleSyllables(options)
	case "lookup":
		result = b.handleLookup(ctx, options)
	default:
		result = handlerResult{
			Response: "❌ Unknown command.",
			Err:      newUserError(fmt.Errorf("unknown command %q", cmd)),
		}
	}

	_, isUserErr := errors.AsType[*userError](result.Err)
	b.respond(ctx, i, result.Response, isUserErr)

	switch {
	case result.Err == nil:
		metrics.BotCommandsTotal.WithLabelValues(cmd, "ok").Inc()
	case isUserErr:
		metrics.BotCommandsTotal.WithLabelValues(cmd, "user_error").Inc()
		b.log.WarnContext(ctx, "user error", "command", cmd, "error", result.Err, "channel_id", i.ChannelID)
	default:
		metrics.BotCommandsTotal.WithLabelValues(cmd, "error").Inc()
		b.log.ErrorContext(ctx, "command failed", "command", cmd, "error", result.Err, "channel_id", i.ChannelID)
	}
}

func (b *Bot) handleConvert(options []*discordgo.ApplicationCommandInteractionDataOption) handlerResult {
	text := strings.TrimSpace(getOption(options, "text"))
	if text == "" {
		return handlerResult{
			Response: "❌ Give me some text to convert.",
			Err:      newUserError(errors.New("empty text")),
		}
	}

	to, err := transliteration.ParseScript(getOption(options, "to"))
	if err == nil && !lo.Contains([]transliteration.Script{transliteration.Latn, transliteration.Kana, transliteration.Cyrl}, to) {
		err = fmt.Errorf("cannot convert to %s", to)
	}
	if err != nil {
		return handlerResult{
			Response: "❌ Unknown target script. Use latn, kana or cyrl.",
			Err:      newUserError(err),
		}
	}

	result, from := b.conv.Convert(text, transliteration.Unknown, to)
	switch from {
	case transliteration.Unknown:
		return handlerResult{
			Response: "❌ No Latin, Katakana or Cyrillic letters found.",
			Err:      newUserError(fmt.Errorf("undetectable script in %q", text)),
		}
	case transliteration.Mixed:
		return handlerResult{
			Response: "❌ The text mixes scripts. Convert one script at a time.",
			Err:      newUserError(fmt.Errorf("mixed scripts in %q", text)),
		}
	}

	return handlerResult{Response: fmt.Sprintf("%s → %s\n%s", from, to, result)}
}

func (b *Bot) handleSyllables(options []*discordgo.ApplicationCommandInteractionDataOption) handlerResult {
	text := getOption(options, "text")
	words := b.conv.Syllabify(text)
	if len(words) == 0 {
		return handlerResult{
			Response: "❌ No words found.",
			Err:      newUserError(fmt.Errorf("no words in %q", text)),
		}
	}
	return handlerResult{Response: formatSyllables(words)}
}

func (b *Bot) handleLookup(ctx context.Context, options []*discordgo.ApplicationCommandInteractionDataOption) handlerResult {
	if b.repo == nil {
		return handlerResult{
			Response: "❌ No lexicon is configured.",
			Err:      newUserError(errors.New("lookup without lexicon")),
		}
	}

	word := getOption(options, "word")
	entry, err := lexicon.Lookup(ctx, b.repo, word)
	if db.IsNoRows(err) {
		return handlerResult{
			Response: fmt.Sprintf("🔍 **%s** is not in the lexicon.", word),
			Err:      newUserError(err),
		}
	}
	if err != nil {
		return handlerResult{
			Response: "❌ Lookup failed. Please try again later.",
			Err:      fmt.Errorf("looking up %q: %w", word, err),
		}
	}
	return handlerResult{Response: formatEntry(entry)}
}

// formatSyllables renders words as "ay-nu i-tak".
func formatSyllables(words [][]string) string {
	return strings.Join(lo.Map(words, func(syllables []string, _ int) string {
		return strings.Join(syllables, "-")
	}), " ")
}

func formatEntry(e db.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** · %s · %s", e.Latn, e.Kana, e.Cyrl)
	if e.Syllables != "" {
		fmt.Fprintf(&sb, " (%s)", strings.ReplaceAll(e.Syllables, " ", "-"))
	}
	if e.Gloss.Valid {
		fmt.Fprintf(&sb, "\n%s", e.Gloss.String)
	}
	return sb.String()
}

func (b *Bot) respond(ctx context.Context, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.log.ErrorContext(ctx, "failed to respond to interaction", "error", err)
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func getOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

type userError struct {
	Err error
}

func (e *userError) Error() string {
	return e.Err.Error()
}

func (e *userError) Unwrap() error {
	return e.Err
}

func newUserError(err error) *userError {
	return &userError{Err: err}
}
