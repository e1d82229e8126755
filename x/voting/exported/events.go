package exported

// event topics
const (
	TopicVotingCreated  = "voting_created"
	TopicRoundStarted   = "round_started"
	TopicRoundEnded     = "round_ended"
	TopicVotingFinished = "voting_finished"
)

// VotingCreated is published when a voting is proposed
type VotingCreated struct {
	Voting VotingRef `json:"voting"`
}

// Topic returns the event topic
func (VotingCreated) Topic() string { return TopicVotingCreated }

// RoundStarted is published when a round of a voting starts
type RoundStarted struct {
	Voting VotingRef `json:"voting"`
	Round  uint32    `json:"round"`
}

// Topic returns the event topic
func (RoundStarted) Topic() string { return TopicRoundStarted }

// RoundEnded is published when a round of a voting ends. Winners and losers are the complete sets at the end of the round.
type RoundEnded struct {
	Voting  VotingRef  `json:"voting"`
	Round   uint32     `json:"round"`
	Winners []ChoiceID `json:"winners"`
	Losers  []ChoiceID `json:"losers"`
	Status  Status     `json:"status"`
}

// Topic returns the event topic
func (RoundEnded) Topic() string { return TopicRoundEnded }

// VotingFinished is published when a voting reaches a terminal status
type VotingFinished struct {
	Voting VotingRef `json:"voting"`
	Status Status    `json:"status"`
}

// Topic returns the event topic
func (VotingFinished) Topic() string { return TopicVotingFinished }
