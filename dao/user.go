package dao

import (
	"Mingle/models"
	"context"

	"gorm.io/gorm"
)

type UserDAO struct {
	Repo[models.User]
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{Repo: NewRepo[models.User](db)}
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return d.FindByWhere(ctx, "email = ?", email)
}

func (d *UserDAO) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return d.IsExist(ctx, "id = ?", id)
}
