package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "loopware.io/user-directory/app/domain/user"
	"loopware.io/user-directory/app/infrastructure/database/dbschema"
	"loopware.io/user-directory/app/utils/functional"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) domain.UserRepository {
	return &UserGormRepository{
		db: db,
	}
}

func (r *UserGormRepository) Create(ctx context.Context, u *domain.User) error {
	model := dbschema.NewSchemaUser(u)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	u.ID = model.ID
	return nil
}

func (r *UserGormRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var model dbschema.User
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return model.EtoD(), nil
}

func (r *UserGormRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	var models []*dbschema.User
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}

	return functional.Map(models, func(m *dbschema.User) *domain.User {
		return m.EtoD()
	}), nil
}

func (r *UserGormRepository) FindByFilter(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	query := r.db.WithContext(ctx).Model(&dbschema.User{})

	if filter.UsernameContains != nil {
		query = query.Where("username LIKE ?", "%"+*filter.UsernameContains+"%")
	}
	if filter.BirthdateFrom != nil && filter.BirthdateTo != nil {
		query = query.Where("birthdate BETWEEN ? AND ?", *filter.BirthdateFrom, *filter.BirthdateTo)
	} else if filter.BirthdateFrom != nil {
		query = query.Where("birthdate >= ?", *filter.BirthdateFrom)
	} else if filter.BirthdateTo != nil {
		query = query.Where("birthdate <= ?", *filter.BirthdateTo)
	}
	if len(filter.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", filter.ExcludeIDs)
	}

	var models []*dbschema.User
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return functional.Map(models, func(m *dbschema.User) *domain.User {
		return m.EtoD()
	}), nil
}

func (r *UserGormRepository) UpdateByID(ctx context.Context, id uint, fields domain.UserUpdate) (int64, error) {
	updates := map[string]interface{}{}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Surname != nil {
		updates["surname"] = *fields.Surname
	}
	if fields.Username != nil {
		updates["username"] = *fields.Username
	}
	if fields.Birthdate != nil {
		updates["birthdate"] = *fields.Birthdate
	}
	if len(updates) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Model(&dbschema.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *UserGormRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&dbschema.User{}, id).Error
}
