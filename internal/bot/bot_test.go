package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"botw/internal/metrics"
	"botw/internal/rankings"
	"botw/internal/structures"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	mu          sync.Mutex
	submissions []structures.Submission
	appendErr   error
	snapshot    *structures.RankingSnapshot
	readErr     error
	reads       int
}

func (f *fakeStore) AppendSubmission(ctx context.Context, sub structures.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.submissions = append(f.submissions, sub)
	return nil
}

func (f *fakeStore) ReadRankings(ctx context.Context) (*structures.RankingSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.snapshot, f.readErr
}

type fakeSession struct {
	responses []*discordgo.InteractionResponse
	messages  map[string][]string
	sendErr   error
}

func newFakeSession() *fakeSession {
	return &fakeSession{messages: map[string][]string{}}
}

func (f *fakeSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return f.sendErr
}

func (f *fakeSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.messages[channelID] = append(f.messages[channelID], content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, f.sendErr
}

var fixedNow = time.Date(2024, time.March, 9, 20, 5, 0, 0, time.UTC)

func newTestBot(t *testing.T, store Store, cfg structures.Config) (*Bot, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	if cfg.RankingTitle == "" {
		cfg.RankingTitle = "Malediction BOTW Rankings:"
	}
	b := New(cfg, store, zap.NewNop(), m)
	b.now = func() time.Time { return fixedNow }
	return b, m
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func botwInteraction(username, team, boss, drop string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: CommandName,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				stringOpt("team", team),
				stringOpt("boss", boss),
				stringOpt("drop", drop),
			},
		},
		Member: &discordgo.Member{User: &discordgo.User{Username: username}},
	}}
}

func replyContent(t *testing.T, s *fakeSession) string {
	t.Helper()
	require.Len(t, s.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, s.responses[0].Type)
	return s.responses[0].Data.Content
}

func TestSubmissionAppendsRow(t *testing.T) {
	store := &fakeStore{}
	b, m := newTestBot(t, store, structures.Config{})
	s := newFakeSession()

	b.HandleInteraction(context.Background(), s, botwInteraction("alice", "Raids", "Zulrah", "Tanzanite helm"))

	assert.Equal(t, SubmitOK, replyContent(t, s))
	require.Len(t, store.submissions, 1)
	sub := store.submissions[0]
	assert.Equal(t, []interface{}{"alice", "Raids", "Zulrah", "Tanzanite helm", "09/03, 20:05"}, sub.Row())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.ResultOK)))
}

func TestSubmissionFromDirectMessageUsesUser(t *testing.T) {
	store := &fakeStore{}
	b, _ := newTestBot(t, store, structures.Config{})
	s := newFakeSession()

	i := botwInteraction("", "Solo", "Vorkath", "Visage")
	i.Member = nil
	i.User = &discordgo.User{Username: "bob"}
	b.HandleInteraction(context.Background(), s, i)

	require.Len(t, store.submissions, 1)
	assert.Equal(t, "bob", store.submissions[0].Submitter)
}

func TestSubmissionFailureRepliesWithSubmitError(t *testing.T) {
	store := &fakeStore{appendErr: errors.New("backend unreachable")}
	b, m := newTestBot(t, store, structures.Config{})
	s := newFakeSession()

	assert.NotPanics(t, func() {
		b.HandleInteraction(context.Background(), s, botwInteraction("alice", "Raids", "Zulrah", "Tanzanite helm"))
	})

	got := replyContent(t, s)
	assert.Equal(t, SubmitFailed, got)
	assert.Contains(t, got, "6969")
	assert.NotContains(t, got, "9696")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.ResultError)))
}

func TestSubmissionReplyErrorIsSwallowed(t *testing.T) {
	store := &fakeStore{}
	b, _ := newTestBot(t, store, structures.Config{})
	s := newFakeSession()
	s.sendErr = errors.New("unknown interaction")

	assert.NotPanics(t, func() {
		b.HandleInteraction(context.Background(), s, botwInteraction("alice", "Raids", "Zulrah", "Tanzanite helm"))
	})
	assert.Len(t, store.submissions, 1)
}

func TestSubmissionRateLimit(t *testing.T) {
	store := &fakeStore{}
	b, m := newTestBot(t, store, structures.Config{SubmitRatePerMinute: 1})

	first := newFakeSession()
	b.HandleInteraction(context.Background(), first, botwInteraction("alice", "Raids", "Zulrah", "Tanzanite helm"))
	assert.Equal(t, SubmitOK, replyContent(t, first))

	second := newFakeSession()
	b.HandleInteraction(context.Background(), second, botwInteraction("alice", "Raids", "Zulrah", "Serpentine visage"))
	assert.Equal(t, SubmitLimited, replyContent(t, second))

	other := newFakeSession()
	b.HandleInteraction(context.Background(), other, botwInteraction("bob", "Raids", "Zulrah", "Magic fang"))
	assert.Equal(t, SubmitOK, replyContent(t, other))

	assert.Len(t, store.submissions, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.ResultLimited)))
}

func TestIgnoresOtherInteractions(t *testing.T) {
	store := &fakeStore{}
	b, _ := newTestBot(t, store, structures.Config{})
	s := newFakeSession()

	other := botwInteraction("alice", "Raids", "Zulrah", "Tanzanite helm")
	other.Data = discordgo.ApplicationCommandInteractionData{Name: "ping"}
	b.HandleInteraction(context.Background(), s, other)

	component := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{CustomID: "x"},
	}}
	b.HandleInteraction(context.Background(), s, component)

	assert.Empty(t, s.responses)
	assert.Empty(t, store.submissions)
}

func message(content string, fromBot bool) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: "chan-1",
		Content:   content,
		Author:    &discordgo.User{ID: "u1", Username: "alice", Bot: fromBot},
	}}
}

func TestRankingsTrigger(t *testing.T) {
	store := &fakeStore{snapshot: &structures.RankingSnapshot{
		Header: []string{"Rank", "Name", "Score"},
		Data:   []string{"1", "Alice", "100"},
	}}
	b, m := newTestBot(t, store, structures.Config{})
	s := newFakeSession()

	b.HandleMessage(context.Background(), s, message("!botw", false))

	want := "Malediction BOTW Rankings:\nRank | Name | Score\n  1      |    Alice    |     100 "
	assert.Equal(t, []string{want}, s.messages["chan-1"])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rankings.WithLabelValues(metrics.ResultOK)))
}

func TestRankingsUsesConfiguredTitle(t *testing.T) {
	store := &fakeStore{snapshot: &structures.RankingSnapshot{Header: []string{"A"}, Data: []string{"B"}}}
	b, _ := newTestBot(t, store, structures.Config{RankingTitle: "Week 12:"})
	s := newFakeSession()

	b.HandleMessage(context.Background(), s, message("!botw", false))

	assert.Equal(t, []string{"Week 12:\nA\nB"}, s.messages["chan-1"])
}

func TestRankingsEmpty(t *testing.T) {
	store := &fakeStore{snapshot: &structures.RankingSnapshot{}}
	b, m := newTestBot(t, store, structures.Config{})
	s := newFakeSession()

	b.HandleMessage(context.Background(), s, message("!botw", false))

	assert.Equal(t, []string{rankings.NoData}, s.messages["chan-1"])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rankings.WithLabelValues(metrics.ResultEmpty)))
}

func TestRankingsReadFailure(t *testing.T) {
	store := &fakeStore{readErr: errors.New("quota exceeded")}
	b, m := newTestBot(t, store, structures.Config{})
	s := newFakeSession()

	b.HandleMessage(context.Background(), s, message("!botw", false))

	require.Len(t, s.messages["chan-1"], 1)
	got := s.messages["chan-1"][0]
	assert.Equal(t, RankingFailed, got)
	assert.Contains(t, got, "9696")
	assert.NotEqual(t, SubmitFailed, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rankings.WithLabelValues(metrics.ResultError)))
}

func TestRankingsIgnoresOtherMessages(t *testing.T) {
	store := &fakeStore{snapshot: &structures.RankingSnapshot{}}
	b, _ := newTestBot(t, store, structures.Config{})
	s := newFakeSession()

	for _, msg := range []*discordgo.MessageCreate{
		message("!botw ", false),
		message("!BOTW", false),
		message("hey !botw", false),
		message("!botw", true),
		{Message: &discordgo.Message{ChannelID: "chan-1", Content: "!botw"}},
	} {
		b.HandleMessage(context.Background(), s, msg)
	}

	assert.Empty(t, s.messages)
	assert.Zero(t, store.reads)
}
