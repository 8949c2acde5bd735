package bot

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/openballot/electionbot/src/discord"
	"github.com/openballot/electionbot/src/election"
	"github.com/openballot/electionbot/src/ledger/submit"
)

type Config struct {
	Token   string
	GuildID string
	Service *election.Service
	Writer  *submit.Writer
}

// Bot owns the Discord session and routes slash commands to the election
// service and the event writer. Handlers hold no shared mutable state;
// every invocation re-fetches the logs it needs.
type Bot struct {
	session *discordgo.Session
	guildID string
	service *election.Service
	writer  *submit.Writer
}

func New(cfg Config) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		session: dg,
		guildID: cfg.GuildID,
		service: cfg.Service,
		writer:  cfg.Writer,
	}

	dg.AddHandler(b.handleReady)
	dg.AddHandler(b.handleInteraction)
	dg.Identify.Intents = discordgo.IntentsGuilds

	return b, nil
}

func (b *Bot) Start() error {
	return b.session.Open()
}

func (b *Bot) Stop() {
	b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("bot: logged in as %s", event.User.Username)

	if err := discord.RegisterSlashCommands(s, b.guildID); err != nil {
		log.Printf("bot: register commands failed: %v", err)
	}
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case discord.CommandHello:
		b.handleHello(s, i)
	case discord.CommandViewOngoing:
		b.handleViewOngoing(s, i)
	case discord.CommandViewPast:
		b.handleViewPast(s, i)
	case discord.CommandViewDetails:
		b.handleViewDetails(s, i)
	case discord.CommandViewCandidates:
		b.handleViewCandidates(s, i)
	case discord.CommandCastVote:
		b.handleCastVote(s, i)
	case discord.CommandRegisterCandidate:
		b.handleRegisterCandidate(s, i)
	case discord.CommandHelp:
		b.handleHelp(s, i)
	default:
		if err := discord.Respond(s, i.Interaction, "Invalid command"); err != nil {
			log.Printf("bot: invalid-command reply failed: %v", err)
		}
	}
}
