package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// errNotFound is returned (wrapped) when a user or profile row does not exist.
var errNotFound = errors.New("not found")

// profileStore is the persistence boundary for users and their profiles.
type profileStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (user, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (userProfile, error)
	// UpsertProfile inserts or replaces the profile for p.UserID and reports
	// whether a new row was created.
	UpsertProfile(ctx context.Context, p userProfile) (userProfile, bool, error)
	Ping(ctx context.Context) error
}

type pgProfileStore struct {
	db  *pgxpool.Pool
	log logrus.FieldLogger
}

func newPGProfileStore(db *pgxpool.Pool, log logrus.FieldLogger) *pgProfileStore {
	return &pgProfileStore{db: db, log: log}
}

func (s *pgProfileStore) GetUser(ctx context.Context, id uuid.UUID) (user, error) {
	u, err := queryOne[user](ctx, s.db, s.log,
		"SELECT * FROM users WHERE id = @id",
		pgx.NamedArgs{"id": id})
	if errors.Is(err, pgx.ErrNoRows) {
		return user{}, fmt.Errorf("user %s: %w", id, errNotFound)
	}
	if err != nil {
		return user{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

func (s *pgProfileStore) GetProfile(ctx context.Context, userID uuid.UUID) (userProfile, error) {
	p, err := queryOne[userProfile](ctx, s.db, s.log,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if errors.Is(err, pgx.ErrNoRows) {
		return userProfile{}, fmt.Errorf("profile for user %s: %w", userID, errNotFound)
	}
	if err != nil {
		return userProfile{}, fmt.Errorf("get profile for user %s: %w", userID, err)
	}
	return p, nil
}

// upsertedProfile adds the inserted flag computed by the upsert query.
// xmax is 0 only for rows created by this statement.
type upsertedProfile struct {
	userProfile
	Inserted bool `db:"inserted"`
}

func (s *pgProfileStore) UpsertProfile(ctx context.Context, p userProfile) (userProfile, bool, error) {
	row, err := queryOne[upsertedProfile](ctx, s.db, s.log, `
		INSERT INTO user_profiles (user_id, gender, age, height_cm, weight_kg, activity_level, target_weight_kg)
		VALUES (@userID, @gender, @age, @heightCm, @weightKg, @activityLevel, @targetWeightKg)
		ON CONFLICT (user_id) DO UPDATE SET
			gender = EXCLUDED.gender,
			age = EXCLUDED.age,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			activity_level = EXCLUDED.activity_level,
			target_weight_kg = EXCLUDED.target_weight_kg,
			updated_at = now()
		RETURNING *, (xmax = 0) AS inserted`,
		pgx.NamedArgs{
			"userID":         p.UserID,
			"gender":         p.Gender,
			"age":            p.Age,
			"heightCm":       p.HeightCm,
			"weightKg":       p.WeightKg,
			"activityLevel":  p.ActivityLevel,
			"targetWeightKg": p.TargetWeightKg,
		})
	if err != nil {
		return userProfile{}, false, fmt.Errorf("upsert profile for user %s: %w", p.UserID, err)
	}
	return row.userProfile, row.Inserted, nil
}

func (s *pgProfileStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
