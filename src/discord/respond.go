package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Respond sends the single immediate reply for an interaction.
func Respond(s *discordgo.Session, i *discordgo.Interaction, content string) error {
	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

// Defer acknowledges an interaction so a slower reply can follow as an edit.
func Defer(s *discordgo.Session, i *discordgo.Interaction) error {
	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

// EditDeferred replaces a deferred acknowledgement with the final reply text.
func EditDeferred(s *discordgo.Session, i *discordgo.Interaction, content string) error {
	_, err := s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &content})
	return err
}

// StringOption extracts a string option by name. The gateway enforces
// required-ness before dispatch; a missing option yields "".
func StringOption(data discordgo.ApplicationCommandInteractionData, name string) string {
	for _, opt := range data.Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}
