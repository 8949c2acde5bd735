package discord

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	CommandHello             = "hello"
	CommandViewOngoing       = "view-ongoing-elections"
	CommandViewPast          = "view-past-elections"
	CommandViewDetails       = "view-election-details"
	CommandViewCandidates    = "view-candidates"
	CommandCastVote          = "cast-vote"
	CommandRegisterCandidate = "register-candidate"
	CommandHelp              = "help"
)

var commandDefinitions = map[string]*discordgo.ApplicationCommand{
	CommandHello: {
		Name:        CommandHello,
		Description: "Replies with Hello!",
	},
	CommandViewOngoing: {
		Name:        CommandViewOngoing,
		Description: "View ongoing elections",
	},
	CommandViewPast: {
		Name:        CommandViewPast,
		Description: "View past elections",
	},
	CommandViewDetails: {
		Name:        CommandViewDetails,
		Description: "View details of an election",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "election_id",
				Description: "The ID of the election",
				Required:    true,
			},
		},
	},
	CommandViewCandidates: {
		Name:        CommandViewCandidates,
		Description: "View candidates for an election",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "election_id",
				Description: "The ID of the election",
				Required:    true,
			},
		},
	},
	CommandCastVote: {
		Name:        CommandCastVote,
		Description: "Cast a vote for a candidate",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "email_address",
				Description: "Your email address",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "election_id",
				Description: "The ID of the election",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "candidate_id",
				Description: "The ID of the candidate",
				Required:    true,
			},
		},
	},
	CommandRegisterCandidate: {
		Name:        CommandRegisterCandidate,
		Description: "Register as a candidate",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "email_address",
				Description: "Your email address",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "election_id",
				Description: "The ID of the election",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "candidate_name",
				Description: "Your name",
				Required:    true,
			},
		},
	},
	CommandHelp: {
		Name:        CommandHelp,
		Description: "Help command",
	},
}

var defaultCommandOrder = []string{
	CommandHello,
	CommandViewOngoing,
	CommandViewPast,
	CommandViewDetails,
	CommandViewCandidates,
	CommandCastVote,
	CommandRegisterCandidate,
	CommandHelp,
}

// RegisterSlashCommands registers the requested slash commands for a guild.
// When no command names are provided, all known commands are registered.
func RegisterSlashCommands(s *discordgo.Session, guildID string, names ...string) error {
	if guildID == "" {
		return fmt.Errorf("discord: guildID is required to register slash commands")
	}

	if len(names) == 0 {
		names = defaultCommandOrder
	}

	var failures []string
	for _, name := range names {
		definition, ok := commandDefinitions[name]
		if !ok {
			log.Printf("discord: unknown slash command %q", name)
			continue
		}

		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, definition)
		if err != nil {
			if isDuplicateCommandError(err) {
				log.Printf("discord: slash command %q already registered", name)
				continue
			}
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			log.Printf("discord: failed to register command %q: %v", name, err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("discord: slash command registration errors: %s", strings.Join(failures, "; "))
	}

	return nil
}

// DeleteSlashCommands removes all registered slash commands for a guild.
func DeleteSlashCommands(s *discordgo.Session, guildID string) error {
	if guildID == "" {
		return fmt.Errorf("discord: guildID is required to delete slash commands")
	}

	commands, err := s.ApplicationCommands(s.State.User.ID, guildID)
	if err != nil {
		return err
	}

	for _, cmd := range commands {
		if err := s.ApplicationCommandDelete(s.State.User.ID, guildID, cmd.ID); err != nil {
			return err
		}
	}

	return nil
}

func isDuplicateCommandError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			msg := strings.ToLower(restErr.Message.Message)
			if strings.Contains(msg, "already exists") {
				return true
			}
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "50035") && strings.Contains(msg, "already exists")
}
