package models

import "time"

// BatchGroups are the fixed chat groups, one per academic cohort label.
var BatchGroups = []string{"2019-23", "2020-24", "2021-25"}

// IsBatchGroup reports whether the name is one of the fixed batch groups.
func IsBatchGroup(name string) bool {
	for _, group := range BatchGroups {
		if group == name {
			return true
		}
	}
	return false
}

// Message defines a batch-group message based on the 'messages' table
type Message struct {
	ID         int64     `json:"id" db:"id" example:"1"`
	GroupName  string    `json:"groupName" db:"group_name" example:"2019-23"`
	SenderID   int64     `json:"senderId" db:"sender_id"`
	SenderName string    `json:"senderName" db:"-"` // joined from users, no column of its own
	Content    string    `json:"content" db:"content"`
	SentAt     time.Time `json:"sentAt" db:"sent_at"`
}
