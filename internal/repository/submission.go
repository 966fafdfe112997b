package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/proofstreak/internal/model"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrDuplicateVerified is returned when a goal period already holds a verified submission.
	ErrDuplicateVerified = errors.New("period already has a verified submission")
)

type SubmissionRepository interface {
	Create(sub *model.ProofSubmission) error
	ByID(id string) (*model.ProofSubmission, error)
	ByGoal(goalID string) ([]model.ProofSubmission, error)
	Update(sub *model.ProofSubmission) error
	CountVerified(goalID string) (int, error)
	CountUnrejected(goalID string) (int, error)
	DeleteByGoal(goalID string) error
}

type submissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(sub *model.ProofSubmission) error {
	query := `INSERT INTO proof_submissions (id, goal_id, user_id, date, period_key, status, feedback, photo_file_id, verified_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		sub.ID,
		sub.GoalID,
		sub.UserID,
		sub.Date,
		sub.PeriodKey,
		sub.Status,
		sub.Feedback,
		sub.PhotoFileID,
		sub.VerifiedAt,
		sub.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateVerified
	}

	return err
}

func (r *submissionRepository) ByID(id string) (*model.ProofSubmission, error) {
	sub := &model.ProofSubmission{}
	query := `SELECT * FROM proof_submissions WHERE id = $1`

	err := r.db.Get(sub, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// ByGoal returns a goal's submissions, oldest date first.
func (r *submissionRepository) ByGoal(goalID string) ([]model.ProofSubmission, error) {
	var subs []model.ProofSubmission
	query := `SELECT * FROM proof_submissions WHERE goal_id = $1 ORDER BY date ASC, created_at ASC`

	err := r.db.Select(&subs, query, goalID)
	if err != nil {
		return nil, err
	}

	return subs, nil
}

// Update changes the review outcome of a submission.
func (r *submissionRepository) Update(sub *model.ProofSubmission) error {
	query := `UPDATE proof_submissions
	          SET status = $1, feedback = $2, verified_at = $3, photo_file_id = $4, period_key = $5
	          WHERE id = $6`

	result, err := r.db.Exec(query, sub.Status, sub.Feedback, sub.VerifiedAt, sub.PhotoFileID, sub.PeriodKey, sub.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateVerified
	}
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}

func (r *submissionRepository) CountVerified(goalID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM proof_submissions WHERE goal_id = $1 AND status = $2`
	err := r.db.QueryRow(query, goalID, model.SubmissionStatusVerified).Scan(&count)
	return count, err
}

// CountUnrejected counts verified and pending submissions. Pending ones may
// still become verified under their stored period key.
func (r *submissionRepository) CountUnrejected(goalID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM proof_submissions WHERE goal_id = $1 AND status <> $2`
	err := r.db.QueryRow(query, goalID, model.SubmissionStatusRejected).Scan(&count)
	return count, err
}

func (r *submissionRepository) DeleteByGoal(goalID string) error {
	query := `DELETE FROM proof_submissions WHERE goal_id = $1`
	_, err := r.db.Exec(query, goalID)
	return err
}
