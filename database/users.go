package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vefforritun/verkefni-api/logging"
	"github.com/vefforritun/verkefni-api/models"
)

func (d *Database) getUsersWhere(ctx context.Context, where string, args []any) ([]models.User, error) {
	q := "SELECT id, name, username, password, admin FROM users" + where

	users := []models.User{}
	err := d.query(ctx, q, args, func(rows pgx.Rows) error {
		for rows.Next() {
			var user models.User
			if err := rows.Scan(&user.ID, &user.Name, &user.Username, &user.Password, &user.Admin); err != nil {
				return err
			}
			users = append(users, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// GetUsers returns all users.
func (d *Database) GetUsers(ctx context.Context) ([]models.User, error) {
	return d.getUsersWhere(ctx, "", nil)
}

// GetUserByUsername returns one user by username. The caller decides
// whether ErrNotFound may leak to the client; login must not let it.
func (d *Database) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := d.getUsersWhere(ctx, " WHERE username = $1", []any{username})
	if err != nil {
		return nil, err
	}
	if len(users) != 1 {
		return nil, ErrNotFound
	}
	return &users[0], nil
}

// InsertUser inserts a user; the password must already be hashed.
func (d *Database) InsertUser(ctx context.Context, user models.NewUser) (*models.User, error) {
	q := `
	INSERT INTO
		users (name, username, password, admin)
	VALUES
		($1, $2, $3, $4)
	ON CONFLICT DO NOTHING
	RETURNING id, name, username, password, admin`

	var created models.User
	inserted := false
	err := d.query(ctx, q, []any{user.Name, user.Username, user.Password, user.Admin}, func(rows pgx.Rows) error {
		for rows.Next() {
			if err := rows.Scan(&created.ID, &created.Name, &created.Username, &created.Password, &created.Admin); err != nil {
				return err
			}
			inserted = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !inserted {
		logging.Logger.Warnf("unable to insert user %q", user.Username)
		return nil, fmt.Errorf("unable to insert user")
	}

	return &created, nil
}

// DeleteUser deletes a user by id.
func (d *Database) DeleteUser(ctx context.Context, id int) error {
	count, err := d.exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if count != 1 {
		logging.Logger.Warnf("unable to delete user %d", id)
		return fmt.Errorf("unable to delete user %d", id)
	}
	return nil
}
