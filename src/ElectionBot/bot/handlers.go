package bot

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/openballot/electionbot/src/discord"
	"github.com/openballot/electionbot/src/logging"
)

func (b *Bot) handleHello(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := discord.Respond(s, i.Interaction, "Welcome to Voting DApp Bot!"); err != nil {
		log.Printf("bot: hello reply failed: %v", err)
	}
}

func (b *Bot) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := discord.Respond(s, i.Interaction, RenderHelp()); err != nil {
		log.Printf("bot: help reply failed: %v", err)
	}
}

func (b *Bot) handleViewOngoing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := discord.Defer(s, i.Interaction); err != nil {
		log.Printf("bot: ongoing ack failed: %v", err)
		return
	}

	ongoing, err := b.service.Ongoing(context.Background())
	if err != nil {
		log.Printf("bot: ongoing elections: %v", err)
		b.edit(s, i, readFailureMessage(err))
		return
	}
	b.edit(s, i, RenderOngoing(ongoing))
}

func (b *Bot) handleViewPast(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := discord.Defer(s, i.Interaction); err != nil {
		log.Printf("bot: past ack failed: %v", err)
		return
	}

	past, err := b.service.Past(context.Background())
	if err != nil {
		log.Printf("bot: past elections: %v", err)
		b.edit(s, i, readFailureMessage(err))
		return
	}
	b.edit(s, i, RenderPast(past))
}

func (b *Bot) handleViewDetails(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := discord.Defer(s, i.Interaction); err != nil {
		log.Printf("bot: details ack failed: %v", err)
		return
	}

	electionID := discord.StringOption(i.ApplicationCommandData(), "election_id")
	detail, err := b.service.Detail(context.Background(), electionID)
	if err != nil {
		if logging.IsNotFound(err) {
			b.edit(s, i, fmt.Sprintf("Election with ID %s not found", electionID))
			return
		}
		log.Printf("bot: election details for %s: %v", electionID, err)
		b.edit(s, i, readFailureMessage(err))
		return
	}
	b.edit(s, i, RenderDetail(detail))
}

func (b *Bot) handleViewCandidates(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := discord.Defer(s, i.Interaction); err != nil {
		log.Printf("bot: candidates ack failed: %v", err)
		return
	}

	electionID := discord.StringOption(i.ApplicationCommandData(), "election_id")
	roster, err := b.service.Candidates(context.Background(), electionID)
	if err != nil {
		log.Printf("bot: candidates for %s: %v", electionID, err)
		b.edit(s, i, readFailureMessage(err))
		return
	}
	b.edit(s, i, RenderCandidates(roster))
}

func (b *Bot) handleCastVote(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := discord.Defer(s, i.Interaction); err != nil {
		log.Printf("bot: cast-vote ack failed: %v", err)
		return
	}

	data := i.ApplicationCommandData()
	email := discord.StringOption(data, "email_address")
	electionID := discord.StringOption(data, "election_id")
	candidateID := discord.StringOption(data, "candidate_id")
	voterID := interactionUserID(i)

	if err := b.writer.CastVote(context.Background(), electionID, candidateID, voterID, email); err != nil {
		log.Printf("bot: cast vote by %s in %s: %v", voterID, electionID, err)
		b.edit(s, i, "Failed to submit your vote. Please try again.")
		return
	}
	b.edit(s, i, fmt.Sprintf("Your vote for candidate %s in election %s has been submitted.", candidateID, electionID))
}

func (b *Bot) handleRegisterCandidate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := discord.Defer(s, i.Interaction); err != nil {
		log.Printf("bot: register-candidate ack failed: %v", err)
		return
	}

	data := i.ApplicationCommandData()
	email := discord.StringOption(data, "email_address")
	electionID := discord.StringOption(data, "election_id")
	candidateName := discord.StringOption(data, "candidate_name")
	candidateID := interactionUserID(i)

	if err := b.writer.RegisterCandidate(context.Background(), electionID, candidateID, candidateName, email); err != nil {
		log.Printf("bot: register candidate %s in %s: %v", candidateID, electionID, err)
		b.edit(s, i, "Failed to submit your registration. Please try again.")
		return
	}
	b.edit(s, i, fmt.Sprintf("You are registered as a candidate in election %s.", electionID))
}

func (b *Bot) edit(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if err := discord.EditDeferred(s, i.Interaction, content); err != nil {
		log.Printf("bot: response edit failed: %v", err)
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

func readFailureMessage(err error) string {
	if logging.IsDecode(err) {
		return "The election ledger returned a record this bot could not decode. Please try again later."
	}
	return "Failed to reach the election ledger. Please try again."
}
