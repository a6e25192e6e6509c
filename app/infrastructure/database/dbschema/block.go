package dbschema

import (
	"loopware.io/user-directory/app/domain/block"
	"loopware.io/user-directory/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Block{})
}

// Block carries no uniqueness constraint over (BlockerID, BlockedID):
// duplicate rows are tolerated and unblocking removes them all.
type Block struct {
	BaseModel
	BlockerID uint `gorm:"index"`
	BlockedID uint `gorm:"index"`
}

func NewSchemaBlock(b *block.Block) *Block {
	return &Block{
		BaseModel: BaseModel{
			ID: b.ID,
		},
		BlockerID: b.BlockerID,
		BlockedID: b.BlockedID,
	}
}

func (b *Block) EtoD() *block.Block {
	return &block.Block{
		ID:        b.ID,
		BlockerID: b.BlockerID,
		BlockedID: b.BlockedID,
	}
}
