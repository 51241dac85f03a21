// Package schema creates the tables the service needs on startup. It is
// idempotent; every statement guards with IF NOT EXISTS so repeated boots
// against the same database are safe.
package schema

import (
	"context"
	"fmt"

	"gigboard/internal/database"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		job_type TEXT NOT NULL,
		pay NUMERIC(12,2) NOT NULL CHECK (pay > 0),
		pay_frequency TEXT NOT NULL CHECK (pay_frequency IN ('daily','weekly','monthly')),
		contact_enc BYTEA NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		region TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		posted_by UUID NOT NULL REFERENCES users(id),
		status TEXT NOT NULL CHECK (status IN ('available','taken','completed')),
		assigned_user UUID NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_status_created ON jobs (status, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS job_applicants (
		job_id UUID NOT NULL REFERENCES jobs(id),
		user_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (job_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS job_approved_seekers (
		job_id UUID NOT NULL REFERENCES jobs(id),
		user_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (job_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS testimonials (
		id UUID PRIMARY KEY,
		job_id UUID NOT NULL REFERENCES jobs(id),
		user_id UUID NOT NULL REFERENCES users(id),
		rating SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_testimonials_job ON testimonials (job_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id UUID PRIMARY KEY,
		channel_key TEXT NOT NULL,
		sender_id UUID NOT NULL REFERENCES users(id),
		sender_email TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_channel ON chat_messages (channel_key, created_at)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		recipient_id UUID NOT NULL REFERENCES users(id),
		event_type TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		job_id UUID NULL,
		job_title TEXT NOT NULL DEFAULT '',
		sender_id UUID NULL,
		read BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications (recipient_id, created_at DESC)`,
}

func Ensure(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
