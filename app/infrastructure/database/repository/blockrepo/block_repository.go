package blockrepo

import (
	"context"

	"gorm.io/gorm"

	domain "loopware.io/user-directory/app/domain/block"
	"loopware.io/user-directory/app/infrastructure/database/dbschema"
	"loopware.io/user-directory/app/utils/functional"
)

type BlockGormRepository struct {
	db *gorm.DB
}

func NewBlockGormRepository(db *gorm.DB) *BlockGormRepository {
	return &BlockGormRepository{
		db: db,
	}
}

func (r *BlockGormRepository) Create(ctx context.Context, b *domain.Block) error {
	model := dbschema.NewSchemaBlock(b)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	b.ID = model.ID
	return nil
}

// DeleteByPair removes every row for the pair; zero matches is not an error.
func (r *BlockGormRepository) DeleteByPair(ctx context.Context, blockerID uint, blockedID uint) error {
	return r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&dbschema.Block{}).Error
}

func (r *BlockGormRepository) FindByBlocker(ctx context.Context, blockerID uint) ([]*domain.Block, error) {
	var models []*dbschema.Block
	err := r.db.WithContext(ctx).Where("blocker_id = ?", blockerID).Find(&models).Error
	if err != nil {
		return nil, err
	}

	return functional.Map(models, func(m *dbschema.Block) *domain.Block {
		return m.EtoD()
	}), nil
}

// BlockedIDs implements user.BlockedIDsProvider for the search exclusion
// filter. Duplicate block rows collapse to one id.
func (r *BlockGormRepository) BlockedIDs(ctx context.Context, blockerID uint) ([]uint, error) {
	blocks, err := r.FindByBlocker(ctx, blockerID)
	if err != nil {
		return nil, err
	}

	return functional.Distinct(functional.Map(blocks, func(b *domain.Block) uint {
		return b.BlockedID
	})), nil
}
