package repository

import "database/sql"

// CampaignStore composes the prize snapshot reads and the winner-recording
// transaction behind one value, which is the persistence capability the
// draw engine consumes.
type CampaignStore struct {
    *PrizeRepo
    *DrawStore
}

// NewCampaignStore returns a CampaignStore bound to the given database.
func NewCampaignStore(db *sql.DB) *CampaignStore {
    return &CampaignStore{
        PrizeRepo: NewPrizeRepo(db),
        DrawStore: NewDrawStore(db),
    }
}
