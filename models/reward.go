package models

// Reward holds point state. A row with a non-zero UserID is that user's
// balance cache, kept in lockstep with the transaction ledger. Rows with
// UserID zero are catalog items redeemable by anyone.
type Reward struct {
	Model
	UserID         uint   `json:"user_id" gorm:"index"`
	Name           string `json:"name" gorm:"type:varchar(255)"`
	Points         int    `json:"points"`
	Level          int    `json:"level" gorm:"default:1"`
	IsAvailable    bool   `json:"is_available" gorm:"default:true"`
	CollectionInfo string `json:"collection_info" gorm:"type:varchar(500)"`
	Description    string `json:"description" gorm:"type:varchar(500)"`
}

// RewardOffer is a redeemable entry as shown to a user. The first offer in
// every listing is the synthetic "Your Points" entry whose cost is the live
// balance; the rest come from the catalog.
type RewardOffer struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Cost           int    `json:"cost"`
	Description    string `json:"description"`
	CollectionInfo string `json:"collection_info"`
}

// LeaderboardEntry pairs a user's cached point total with their name.
type LeaderboardEntry struct {
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
	Points   int    `json:"points"`
	Level    int    `json:"level"`
}
