package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createUsersTable,
		createEventsTable,
		createEventDetailsTable,
		createTicketTypesTable,
		createRegistrationsTable,
		createActiveRegistrationIndex,
		createNotificationsTable,
		createGalleryImagesTable,
		createClubsTable,
		createPlacementCompaniesTable,
		createPlacedStudentsTable,
		createFAQEntriesTable,
		createEventsDateIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    name VARCHAR(255) NOT NULL,
    role VARCHAR(20) NOT NULL DEFAULT 'student',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (role IN ('student', 'organizer', 'admin'))
);`

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
    id SERIAL PRIMARY KEY,
    title VARCHAR(500) NOT NULL,
    slug VARCHAR(500) UNIQUE NOT NULL,
    description TEXT,
    category VARCHAR(50) NOT NULL DEFAULT 'general',
    date DATE NOT NULL,
    time VARCHAR(20),
    end_date DATE,
    end_time VARCHAR(20),
    venue VARCHAR(255),
    venue_capacity INTEGER NOT NULL DEFAULT 0,
    organizer_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    status VARCHAR(20) NOT NULL DEFAULT 'upcoming',
    registration_status VARCHAR(10) NOT NULL DEFAULT 'open',
    total_registrations INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (registration_status IN ('open', 'closed')),
    CHECK (total_registrations >= 0)
);`

const createEventDetailsTable = `
CREATE TABLE IF NOT EXISTS event_details (
    event_id INTEGER PRIMARY KEY REFERENCES events(id) ON DELETE CASCADE,
    rules TEXT,
    eligibility TEXT,
    prizes TEXT
);`

const createTicketTypesTable = `
CREATE TABLE IF NOT EXISTS ticket_types (
    id SERIAL PRIMARY KEY,
    event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    name VARCHAR(255) NOT NULL,
    price INTEGER NOT NULL DEFAULT 0,
    total INTEGER NOT NULL,
    available INTEGER NOT NULL,

    CHECK (available >= 0 AND available <= total)
);`

const createRegistrationsTable = `
CREATE TABLE IF NOT EXISTS registrations (
    id SERIAL PRIMARY KEY,
    event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    ticket_type_id INTEGER REFERENCES ticket_types(id) ON DELETE SET NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'confirmed',
    registration_type VARCHAR(20) NOT NULL DEFAULT 'individual',
    team_name VARCHAR(255),
    team_members TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (status IN ('confirmed', 'pending', 'cancelled')),
    CHECK (registration_type IN ('individual', 'team'))
);`

// One active registration per (event, user); cancelled rows stay for audit.
const createActiveRegistrationIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS registrations_active_event_user_idx
ON registrations (event_id, user_id)
WHERE status <> 'cancelled';`

const createNotificationsTable = `
CREATE TABLE IF NOT EXISTS notifications (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    event_id INTEGER REFERENCES events(id) ON DELETE CASCADE,
    title VARCHAR(255) NOT NULL,
    message TEXT NOT NULL,
    read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createGalleryImagesTable = `
CREATE TABLE IF NOT EXISTS gallery_images (
    id SERIAL PRIMARY KEY,
    event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    url TEXT NOT NULL,
    caption VARCHAR(500),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createClubsTable = `
CREATE TABLE IF NOT EXISTS clubs (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    slug VARCHAR(255) UNIQUE NOT NULL,
    category VARCHAR(50) NOT NULL DEFAULT 'general',
    description TEXT,
    coordinator_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
    member_count INTEGER NOT NULL DEFAULT 0,
    established VARCHAR(10),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createPlacementCompaniesTable = `
CREATE TABLE IF NOT EXISTS placement_companies (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    sector VARCHAR(100),
    ctc VARCHAR(50),
    visit_date DATE,
    eligibility TEXT,
    status VARCHAR(20) NOT NULL DEFAULT 'upcoming'
);`

const createPlacedStudentsTable = `
CREATE TABLE IF NOT EXISTS placed_students (
    id SERIAL PRIMARY KEY,
    company_id INTEGER NOT NULL REFERENCES placement_companies(id) ON DELETE CASCADE,
    student_name VARCHAR(255) NOT NULL,
    branch VARCHAR(100),
    package VARCHAR(50),
    year INTEGER NOT NULL
);`

const createFAQEntriesTable = `
CREATE TABLE IF NOT EXISTS faq_entries (
    id SERIAL PRIMARY KEY,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    keywords TEXT NOT NULL DEFAULT '',
    category VARCHAR(50) NOT NULL DEFAULT 'general'
);`

const createEventsDateIndex = `
CREATE INDEX IF NOT EXISTS events_date_idx ON events (date);`
