package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/devconnect/api/internal/domain/profile"
	"github.com/devconnect/api/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, log logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: log}
}

const profileColumns = `
	p.user_id, u.name, u.avatar,
	p.company, p.website, p.location, p.status, p.bio, p.github_username,
	p.skills, p.social, p.experience, p.education, p.updated_at
`

func (r *postgresProfileRepo) scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	var skillsBytes, socialBytes, experienceBytes, educationBytes []byte

	err := row.Scan(
		&p.Owner.ID,
		&p.Owner.Name,
		&p.Owner.Avatar,
		&p.Company,
		&p.Website,
		&p.Location,
		&p.Status,
		&p.Bio,
		&p.GithubUsername,
		&skillsBytes,
		&socialBytes,
		&experienceBytes,
		&educationBytes,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan profile row: %w", err)
	}

	if err := json.Unmarshal(skillsBytes, &p.Skills); err != nil {
		r.logger.Warn("Failed to unmarshal skills", zap.String("user_id", p.Owner.ID.String()), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		r.logger.Warn("Failed to unmarshal social", zap.String("user_id", p.Owner.ID.String()), zap.Error(err))
		p.Social = profile.Social{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		r.logger.Warn("Failed to unmarshal experience", zap.String("user_id", p.Owner.ID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		r.logger.Warn("Failed to unmarshal education", zap.String("user_id", p.Owner.ID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}

	return p, nil
}

func (r *postgresProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`, profileColumns)
	row := r.db.QueryRow(ctx, query, userID)
	return r.scanProfile(row)
}

func (r *postgresProfileRepo) GetAll(ctx context.Context) ([]*profile.Profile, error) {
	builder := psql.Select(
		"p.user_id", "u.name", "u.avatar",
		"p.company", "p.website", "p.location", "p.status", "p.bio", "p.github_username",
		"p.skills", "p.social", "p.experience", "p.education", "p.updated_at",
	).
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		OrderBy("p.updated_at DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build profile list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	skillsBytes, err := json.Marshal(p.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	socialBytes, err := json.Marshal(p.Social)
	if err != nil {
		return fmt.Errorf("failed to marshal social: %w", err)
	}

	// Experience and education are deliberately absent from the update list
	// so an upsert never clobbers them.
	query := `
		INSERT INTO profiles (user_id, company, website, location, status, bio, github_username, skills, social, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			bio = EXCLUDED.bio,
			github_username = EXCLUDED.github_username,
			skills = EXCLUDED.skills,
			social = EXCLUDED.social,
			updated_at = NOW()
	`
	_, err = r.db.Exec(ctx, query,
		p.Owner.ID,
		p.Company,
		p.Website,
		p.Location,
		p.Status,
		p.Bio,
		p.GithubUsername,
		skillsBytes,
		socialBytes,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (r *postgresProfileRepo) UpdateExperience(ctx context.Context, userID uuid.UUID, entries []profile.Experience) error {
	entriesBytes, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal experience: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx,
		`UPDATE profiles SET experience = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, entriesBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to update experience: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

func (r *postgresProfileRepo) UpdateEducation(ctx context.Context, userID uuid.UUID, entries []profile.Education) error {
	entriesBytes, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal education: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx,
		`UPDATE profiles SET education = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, entriesBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to update education: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}
