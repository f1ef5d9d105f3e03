package structures

import "time"

// TimestampLayout renders submission times as the numeric en-GB "day/month, hour:minute".
const TimestampLayout = "02/01, 15:04"

// Config holds the application configuration
type Config struct {
	SheetID             string `json:"sheet_id" yaml:"sheet_id"`
	SheetName           string `json:"sheet_name" yaml:"sheet_name"`
	CredentialsPath     string `json:"credentials_path" yaml:"credentials_path"`
	DiscordToken        string `json:"discord_token" yaml:"discord_token"`
	ApplicationID       string `json:"application_id" yaml:"application_id"`
	GuildID             string `json:"guild_id,omitempty" yaml:"guild_id,omitempty"`
	RankingTitle        string `json:"ranking_title,omitempty" yaml:"ranking_title,omitempty"`
	MetricsAddress      string `json:"metrics_address,omitempty" yaml:"metrics_address,omitempty"`
	SubmitRatePerMinute int    `json:"submit_rate_per_minute,omitempty" yaml:"submit_rate_per_minute,omitempty"`
}

// Submission is a single drop report waiting for approval.
type Submission struct {
	Submitter   string
	Team        string
	Boss        string
	Drop        string
	SubmittedAt time.Time
}

// Row returns the submission in sheet column order.
func (s Submission) Row() []interface{} {
	return []interface{}{
		s.Submitter,
		s.Team,
		s.Boss,
		s.Drop,
		s.SubmittedAt.UTC().Format(TimestampLayout),
	}
}

// RankingSnapshot is the header and data row read from the rankings range.
type RankingSnapshot struct {
	Header []string
	Data   []string
}

// Empty reports whether the range came back without any rows.
func (r *RankingSnapshot) Empty() bool {
	return r == nil || (len(r.Header) == 0 && len(r.Data) == 0)
}
