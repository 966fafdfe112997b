package model

import (
	"time"
)

const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusVerified = "verified"
	SubmissionStatusRejected = "rejected"
)

// ProofSubmission is one attempt to prove a goal for one calendar date.
// Date is the day the proof counts toward, not the upload instant.
type ProofSubmission struct {
	ID          string     `db:"id" json:"id"`
	GoalID      string     `db:"goal_id" json:"goal_id"`
	UserID      string     `db:"user_id" json:"user_id"`
	Date        string     `db:"date" json:"date"`             // yyyy-mm-dd
	PeriodKey   string     `db:"period_key" json:"period_key"` // date for daily goals, week start for weekly
	Status      string     `db:"status" json:"status"`
	Feedback    string     `db:"feedback" json:"feedback,omitempty"`
	PhotoFileID *string    `db:"photo_file_id" json:"photo_file_id,omitempty"`
	VerifiedAt  *time.Time `db:"verified_at" json:"verified_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

func (s *ProofSubmission) IsVerified() bool {
	return s.Status == SubmissionStatusVerified
}
