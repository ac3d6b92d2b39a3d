package domain

import "time"

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Bio       string    `json:"bio,omitempty"`
	Location  string    `json:"location,omitempty"`

	// Points. The balance is a materialized view over the completed
	// points transactions; the totals are reporting-only.
	PointsBalance     int `json:"points_balance"`
	TotalEarnedPoints int `json:"total_earned_points"`
	TotalSpentPoints  int `json:"total_spent_points"`

	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"total_reviews"`

	PreferredLanguage  string `json:"preferred_language"`
	EmailNotifications bool   `json:"email_notifications"`
	PushNotifications  bool   `json:"push_notifications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
