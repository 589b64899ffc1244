// Package queue defines message payloads exchanged over the message broker.
package queue

// DonationReceivedEvent is published after a donation commits.  It carries
// enough information for downstream consumers to log, notify the campaign
// owner, or feed analytics without querying the primary database.
type DonationReceivedEvent struct {
	CampaignID    uint64 `json:"campaign_id"`
	CampaignTitle string `json:"campaign_title"`
	OwnerID       uint64 `json:"owner_id"`
	Amount        int64  `json:"amount"`
	CurrentAmount int64  `json:"current_amount"`
	GoalAmount    int64  `json:"goal_amount"`
	GoalReached   bool   `json:"goal_reached"`
	ReceivedAt    string `json:"received_at"`
}
