package contract

import "context"

type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
	HashString(s string) string
	CheckHash(s, hash string) bool
}

type IEmailService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type IUUIDGenerator interface {
	NewUUID() string
}

type IRandomGenerator interface {
	GenerateRandomToken(n int) (string, error)
}
