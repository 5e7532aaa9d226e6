package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rssb/sewadar-backend/internal/app/models"
	"github.com/rssb/sewadar-backend/internal/pkg/apperrors"
	"github.com/rssb/sewadar-backend/internal/pkg/dberrors"
)

// SewadarRepository handles database operations for sewadars
type SewadarRepository struct {
	db *pgxpool.Pool
}

// NewSewadarRepository creates a new sewadar repository
func NewSewadarRepository(db *pgxpool.Pool) *SewadarRepository {
	return &SewadarRepository{
		db: db,
	}
}

const sewadarColumns = `
	id, zonal_id, first_name, last_name, mobile, email_id, location, role,
	password, profession, joining_date, date_of_birth, emergency_contact,
	emergency_contact_relationship, photo_url, aadhar_number, remarks,
	created_at, updated_at
`

func scanSewadar(row pgx.Row) (*models.Sewadar, error) {
	var s models.Sewadar
	err := row.Scan(
		&s.ID,
		&s.ZonalID,
		&s.FirstName,
		&s.LastName,
		&s.Mobile,
		&s.EmailID,
		&s.Location,
		&s.Role,
		&s.Password,
		&s.Profession,
		&s.JoiningDate,
		&s.DateOfBirth,
		&s.EmergencyContact,
		&s.EmergencyContactRelationship,
		&s.PhotoURL,
		&s.AadharNumber,
		&s.Remarks,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new sewadar together with their language list
func (r *SewadarRepository) Create(ctx context.Context, sewadar *models.Sewadar) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO sewadars (
			zonal_id, first_name, last_name, mobile, email_id, location, role,
			password, profession, joining_date, date_of_birth, emergency_contact,
			emergency_contact_relationship, photo_url, aadhar_number, remarks
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, query,
		sewadar.ZonalID, sewadar.FirstName, sewadar.LastName, sewadar.Mobile,
		sewadar.EmailID, sewadar.Location, sewadar.Role, sewadar.Password,
		sewadar.Profession, sewadar.JoiningDate, sewadar.DateOfBirth,
		sewadar.EmergencyContact, sewadar.EmergencyContactRelationship,
		sewadar.PhotoURL, sewadar.AadharNumber, sewadar.Remarks,
	).Scan(&sewadar.ID, &sewadar.CreatedAt)
	if err != nil {
		// Service checks first, but a concurrent create can still race
		if dberrors.IsDuplicateConstraintError(err, "sewadars_zonal_id_key") {
			return apperrors.ErrZonalIDAlreadyExists
		}
		return err
	}

	if err := replaceLanguages(ctx, tx, sewadar.ID, sewadar.Languages); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func replaceLanguages(ctx context.Context, tx pgx.Tx, sewadarID int64, languages []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM sewadar_languages WHERE sewadar_id = $1`, sewadarID); err != nil {
		return fmt.Errorf("error clearing languages: %w", err)
	}
	for _, language := range languages {
		language = strings.TrimSpace(language)
		if language == "" {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO sewadar_languages (sewadar_id, language) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			sewadarID, language); err != nil {
			return fmt.Errorf("error inserting language: %w", err)
		}
	}
	return nil
}

// GetByZonalID retrieves a sewadar by zonal ID, including languages
func (r *SewadarRepository) GetByZonalID(ctx context.Context, zonalID string) (*models.Sewadar, error) {
	query := `SELECT` + sewadarColumns + `
		FROM sewadars WHERE zonal_id = $1`

	sewadar, err := scanSewadar(r.db.QueryRow(ctx, query, zonalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSewadarNotFound
		}
		return nil, fmt.Errorf("error retrieving sewadar: %w", err)
	}

	if err := r.loadLanguages(ctx, sewadar); err != nil {
		return nil, err
	}

	return sewadar, nil
}

func (r *SewadarRepository) loadLanguages(ctx context.Context, sewadar *models.Sewadar) error {
	rows, err := r.db.Query(ctx,
		`SELECT language FROM sewadar_languages WHERE sewadar_id = $1 ORDER BY language`, sewadar.ID)
	if err != nil {
		return fmt.Errorf("error retrieving languages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var language string
		if err := rows.Scan(&language); err != nil {
			return err
		}
		sewadar.Languages = append(sewadar.Languages, language)
	}

	return rows.Err()
}

// ZonalIDExists checks if a zonal ID is already registered
func (r *SewadarRepository) ZonalIDExists(ctx context.Context, zonalID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM sewadars WHERE zonal_id = $1)`, zonalID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking zonal ID existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves sewadars matching the given filters with pagination.
// Returns the page of sewadars and the total match count.
func (r *SewadarRepository) GetAll(ctx context.Context, filter SewadarFilter, offset uint64, limit int) ([]*models.Sewadar, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	addCondition := func(condition string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(condition, argIdx))
		args = append(args, value)
		argIdx++
	}

	if filter.Name != "" {
		addCondition("(first_name || ' ' || last_name) ILIKE $%d", "%"+filter.Name+"%")
	}
	if filter.Location != "" {
		addCondition("location ILIKE $%d", "%"+filter.Location+"%")
	}
	if filter.Profession != "" {
		addCondition("profession ILIKE $%d", "%"+filter.Profession+"%")
	}
	if filter.Role != "" {
		addCondition("role = $%d", filter.Role)
	}
	if filter.Language != "" {
		addCondition("id IN (SELECT sewadar_id FROM sewadar_languages WHERE language ILIKE $%d)", filter.Language)
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM sewadars WHERE ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting sewadars: %w", err)
	}

	query := `SELECT` + sewadarColumns + `
		FROM sewadars WHERE ` + where +
		fmt.Sprintf(` ORDER BY first_name, last_name LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sewadars []*models.Sewadar
	for rows.Next() {
		sewadar, err := scanSewadar(rows)
		if err != nil {
			return nil, 0, err
		}
		sewadars = append(sewadars, sewadar)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, sewadar := range sewadars {
		if err := r.loadLanguages(ctx, sewadar); err != nil {
			return nil, 0, err
		}
	}

	return sewadars, total, nil
}

// SewadarFilter holds the optional filters for listing sewadars
type SewadarFilter struct {
	Name       string
	Location   string
	Profession string
	Language   string
	Role       string
}

// Update updates an existing sewadar's profile and language list. The zonal
// ID and password are not touched.
func (r *SewadarRepository) Update(ctx context.Context, sewadar *models.Sewadar) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE sewadars
		SET first_name = $1, last_name = $2, mobile = $3, email_id = $4,
			location = $5, role = $6, profession = $7, joining_date = $8,
			date_of_birth = $9, emergency_contact = $10,
			emergency_contact_relationship = $11, photo_url = $12,
			aadhar_number = $13, remarks = $14, updated_at = NOW()
		WHERE zonal_id = $15
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		sewadar.FirstName, sewadar.LastName, sewadar.Mobile, sewadar.EmailID,
		sewadar.Location, sewadar.Role, sewadar.Profession, sewadar.JoiningDate,
		sewadar.DateOfBirth, sewadar.EmergencyContact,
		sewadar.EmergencyContactRelationship, sewadar.PhotoURL,
		sewadar.AadharNumber, sewadar.Remarks, sewadar.ZonalID,
	).Scan(&sewadar.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrSewadarNotFound
		}
		return fmt.Errorf("error updating sewadar: %w", err)
	}

	if err := replaceLanguages(ctx, tx, sewadar.ID, sewadar.Languages); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdatePassword replaces the stored password hash
func (r *SewadarRepository) UpdatePassword(ctx context.Context, zonalID, passwordHash string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE sewadars SET password = $1, updated_at = NOW() WHERE zonal_id = $2`,
		passwordHash, zonalID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSewadarNotFound
	}
	return nil
}

// Delete deletes a sewadar by zonal ID. Sewadars with program applications
// cannot be deleted.
func (r *SewadarRepository) Delete(ctx context.Context, zonalID string) error {
	var hasApplications bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM program_applications WHERE sewadar_zonal_id = $1)`,
		zonalID).Scan(&hasApplications)
	if err != nil {
		return fmt.Errorf("error checking related applications: %w", err)
	}
	if hasApplications {
		return apperrors.ErrSewadarHasApplications
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sewadars WHERE zonal_id = $1`, zonalID)
	if err != nil {
		// Created programs also block deletion, caught by the FK
		if dberrors.IsForeignKeyViolationError(err) {
			return apperrors.ErrSewadarHasApplications
		}
		return fmt.Errorf("error deleting sewadar: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSewadarNotFound
	}
	return nil
}

// CountAll returns the total number of sewadars
func (r *SewadarRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sewadars`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting sewadars: %w", err)
	}
	return count, nil
}

// CountGroupedBy returns sewadar counts grouped by the given column. The
// column is restricted to a fixed whitelist; anything else is rejected.
func (r *SewadarRepository) CountGroupedBy(ctx context.Context, column string) (map[string]int64, error) {
	switch column {
	case "role", "location", "profession":
	default:
		return nil, fmt.Errorf("unsupported grouping column: %s", column)
	}

	query := fmt.Sprintf(
		`SELECT COALESCE(%s::text, 'UNKNOWN'), COUNT(*) FROM sewadars GROUP BY 1`, column)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

// CountGroupedByLanguage returns sewadar counts per spoken language
func (r *SewadarRepository) CountGroupedByLanguage(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT language, COUNT(DISTINCT sewadar_id) FROM sewadar_languages GROUP BY language`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var language string
		var count int64
		if err := rows.Scan(&language, &count); err != nil {
			return nil, err
		}
		counts[language] = count
	}
	return counts, rows.Err()
}
