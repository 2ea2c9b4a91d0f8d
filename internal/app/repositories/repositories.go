package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	TokenRepository   *TokenRepository
	JobRepository     *JobRepository
	EventRepository   *EventRepository
	MessageRepository *MessageRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		TokenRepository:   NewTokenRepository(db),
		JobRepository:     NewJobRepository(db),
		EventRepository:   NewEventRepository(db),
		MessageRepository: NewMessageRepository(db),
	}
}
