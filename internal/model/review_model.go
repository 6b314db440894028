package model

import "time"

type Review struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Comment   string     `json:"comment"`
	Rating    int        `json:"rating"`
	Approved  bool       `json:"approved"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
