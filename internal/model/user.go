package model

import (
	"time"
)

type User struct {
	ID        string    `db:"id" json:"id" yaml:"id"`
	Email     string    `db:"email" json:"email" yaml:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at" yaml:"created_at"`
}
