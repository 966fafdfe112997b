package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/proofstreak/internal/model"
)

const (
	GoalSortRecent  = "recent"
	GoalSortCreated = "created"
	GoalSortTitle   = "title"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(userID, goalID string) (*model.Goal, error)
	Goals(userID, sortBy string) ([]*model.Goal, error)
	AllGoals() ([]*model.Goal, error)
	OnBreak() ([]*model.Goal, error)
	CountUserGoals(userID string) (int, error)
	Update(goal *model.Goal) error
	AddCompletedDate(goalID, date string, updatedAt time.Time) (bool, error)
	Delete(userID, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, description, frequency, reminder_time, reminder_day, grace_period,
	              is_on_break, break_started_at, break_ended_at, break_streak_snapshot, streak_carryover,
	              completed_dates, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Frequency,
		goal.ReminderTime,
		goal.ReminderDay,
		goal.GracePeriod,
		goal.IsOnBreak,
		goal.BreakStartedAt,
		goal.BreakEndedAt,
		goal.BreakStreakSnapshot,
		goal.StreakCarryover,
		goal.CompletedDates,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalRepository) Goals(userID, sortBy string) ([]*model.Goal, error) {
	var goals []*model.Goal

	var orderBy string
	switch sortBy {
	case GoalSortCreated:
		orderBy = "ORDER BY created_at ASC"
	case GoalSortTitle:
		orderBy = "ORDER BY LOWER(title) ASC"
	default: // GoalSortRecent or empty
		orderBy = "ORDER BY updated_at DESC"
	}

	query := `SELECT * FROM goals WHERE user_id = $1 ` + orderBy

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// AllGoals returns every goal of every user. Used by the reminder worker.
func (r *goalRepository) AllGoals() ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals ORDER BY user_id, created_at`

	err := r.db.Select(&goals, query)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) OnBreak() ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE is_on_break = $1`

	err := r.db.Select(&goals, query, true)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) CountUserGoals(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, description = $2, frequency = $3, reminder_time = $4, reminder_day = $5,
	              grace_period = $6, is_on_break = $7, break_started_at = $8, break_ended_at = $9,
	              break_streak_snapshot = $10, streak_carryover = $11, completed_dates = $12, updated_at = $13
	          WHERE id = $14 AND user_id = $15`

	result, err := r.db.Exec(query,
		goal.Title,
		goal.Description,
		goal.Frequency,
		goal.ReminderTime,
		goal.ReminderDay,
		goal.GracePeriod,
		goal.IsOnBreak,
		goal.BreakStartedAt,
		goal.BreakEndedAt,
		goal.BreakStreakSnapshot,
		goal.StreakCarryover,
		goal.CompletedDates,
		goal.UpdatedAt,
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// AddCompletedDate merges date into completed_dates without touching any
// other column. Reports whether the date was new.
func (r *goalRepository) AddCompletedDate(goalID, date string, updatedAt time.Time) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `SELECT completed_dates FROM goals WHERE id = $1`
	if r.db.DriverName() != "sqlite" {
		query += ` FOR UPDATE`
	}

	var dates model.DateSet
	err = tx.QueryRow(query, goalID).Scan(&dates)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrGoalNotFound
	}
	if err != nil {
		return false, err
	}

	if !dates.Add(date) {
		return false, nil
	}

	_, err = tx.Exec(`UPDATE goals SET completed_dates = $1, updated_at = $2 WHERE id = $3`, dates, updatedAt, goalID)
	if err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (r *goalRepository) Delete(userID, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, goalID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
