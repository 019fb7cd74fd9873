package entity

import "time"

// AdminSession is an authenticated admin login.
type AdminSession struct {
	UserID       int64
	IsAdmin      bool
	LoginTime    time.Time
	LastActivity time.Time
}

// AdminAction is an audit record of an admin operation.
type AdminAction struct {
	ID        string
	UserID    int64
	Action    string // "login", "upload_pricelist", "reset_data"
	Details   string
	Timestamp time.Time
}
