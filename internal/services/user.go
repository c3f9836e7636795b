package services

import (
	"context"
	"database/sql"
	"errors"

	"keyquest/internal/datastore"
	"keyquest/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceUser struct {
	container  *do.Injector
	postgresDB *bun.DB
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	return &ServiceUser{container, postgresDB}, nil
}

func (service *ServiceUser) FindOrCreateUser(ctx context.Context, userAuth *models.UserFromAuth) (*models.User, error) {
	user, err := datastore.FindUserByID(ctx, service.postgresDB, userAuth.ID)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	user = &models.User{
		ID:       userAuth.ID,
		Username: userAuth.Username,
	}
	err = datastore.UpsertUser(ctx, service.postgresDB, user)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return user, nil
}
