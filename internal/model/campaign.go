package model

import "time"

// Campaign is a fundraising record from the `campaigns` table.  A campaign
// accepts donations while IsActive is true; once CurrentAmount reaches
// GoalAmount it is deactivated and never reactivated.  OwnerID is a logical
// reference to users.id with no foreign key constraint.
//
// Fields:
//  ID            – primary key identifier.
//  Title         – campaign title.
//  Description   – optional free-form description.
//  GoalAmount    – target amount; positive.
//  CurrentAmount – donated total so far; never decreases.
//  OwnerID       – user who created the campaign.
//  IsVerified    – whether the campaign passed moderation.
//  IsActive      – whether the campaign still accepts donations.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Campaign struct {
	ID            uint64    // campaigns.id
	Title         string    // campaigns.title
	Description   string    // campaigns.description
	GoalAmount    int64     // campaigns.goal_amount
	CurrentAmount int64     // campaigns.current_amount
	OwnerID       uint64    // campaigns.owner_id
	IsVerified    bool      // campaigns.is_verified
	IsActive      bool      // campaigns.is_active
	CreatedAt     time.Time // campaigns.created_at
	UpdatedAt     time.Time // campaigns.updated_at
}

// ApplyDonation credits amount to the campaign and deactivates it when the
// goal is reached.  Overshoot past the goal is kept; the total is never
// clamped.  The caller is responsible for persisting the mutated record
// atomically with the read that produced it.
func (c *Campaign) ApplyDonation(amount int64) {
	c.CurrentAmount += amount
	if c.CurrentAmount >= c.GoalAmount {
		c.IsActive = false
	}
}
