package bot

import (
	"fmt"
	"strings"

	"github.com/openballot/electionbot/src/election"
	"github.com/openballot/electionbot/src/ledger"
)

const untitled = "Untitled"

func displayName(ev ledger.Event) string {
	if ev.ElectionName == "" {
		return untitled
	}
	return ev.ElectionName
}

// RenderOngoing formats the ongoing election list, one election per line.
func RenderOngoing(elections []ledger.Event) string {
	if len(elections) == 0 {
		return "No ongoing elections"
	}
	lines := make([]string, 0, len(elections))
	for _, ev := range elections {
		lines = append(lines, fmt.Sprintf("**ID:** %s, **Name:** %s", ev.ElectionID, displayName(ev)))
	}
	return strings.Join(lines, "\n")
}

// RenderPast formats the ended election list.
func RenderPast(elections []ledger.Event) string {
	if len(elections) == 0 {
		return "No past elections"
	}
	lines := make([]string, 0, len(elections))
	for _, ev := range elections {
		lines = append(lines, fmt.Sprintf("ID: %s, Name: %s", ev.ElectionID, displayName(ev)))
	}
	return strings.Join(lines, "\n")
}

// RenderDetail formats the multi-line detail block for one election.
func RenderDetail(d election.Detail) string {
	names := make([]string, 0, len(d.Candidates))
	for _, c := range d.Candidates {
		names = append(names, c.DisplayName)
	}
	candidateList := "No candidates"
	if len(names) > 0 {
		candidateList = strings.Join(names, ", ")
	}

	timestampLabel := "Started at"
	winner := "Election is ongoing"
	if d.Ended {
		timestampLabel = "Winner announced at"
		winner = d.WinnerName
	}

	var sb strings.Builder
	sb.WriteString("***Election Details***\n")
	fmt.Fprintf(&sb, "**Election ID:** %s\n", d.Election.ElectionID)
	fmt.Fprintf(&sb, "**Election Name:** %s\n", displayName(d.Election))
	fmt.Fprintf(&sb, "**Candidates:** %s\n", candidateList)
	fmt.Fprintf(&sb, "**Timestamp:** %s %d\n", timestampLabel, d.Election.Timestamp)
	fmt.Fprintf(&sb, "**Ended:** %t\n", d.Ended)
	fmt.Fprintf(&sb, "**Winner:** %s", winner)
	return sb.String()
}

// RenderCandidates formats the candidate roster, one name per line.
func RenderCandidates(roster []election.Candidate) string {
	if len(roster) == 0 {
		return "No candidates found for this election"
	}
	lines := make([]string, 0, len(roster))
	for _, c := range roster {
		lines = append(lines, c.DisplayName)
	}
	return strings.Join(lines, "\n")
}

// RenderHelp lists every command.
func RenderHelp() string {
	return strings.Join([]string{
		"***Commands***",
		"**/hello** - Replies with Hello!",
		"**/view-ongoing-elections** - View ongoing elections",
		"**/view-past-elections** - View past elections",
		"**/view-election-details** - View details of an election",
		"**/view-candidates** - View candidates for an election",
		"**/cast-vote** - Cast a vote for a candidate",
		"**/register-candidate** - Register as a candidate",
		"**/help** - Help command",
	}, "\n")
}
