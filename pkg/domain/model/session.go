package model

import "time"

// Session is the logged in user of the client
type Session struct {
	UserID     string
	UserName   string
	LoggedInAt time.Time
}
