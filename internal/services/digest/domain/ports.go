package domain

import "context"

// MailerPort delivers one rendered message
type MailerPort interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// DigestPort is the digest surface used by transports and the scheduler
type DigestPort interface {
	// SendDailySummary fans the given tasks out to every recipient
	SendDailySummary(ctx context.Context, in DailySummaryInput) (EmailResult, error)

	// SendFriendDigest sends today's task summary to the user's friends,
	// at most once per day
	SendFriendDigest(ctx context.Context, userID string) error

	// SendPersonalDigest sends today's plan to the user, at most once per day
	SendPersonalDigest(ctx context.Context, userID string) error
}
