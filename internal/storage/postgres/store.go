// Package postgres implements the Hoofprint store on a remote PostgreSQL
// database via lib/pq. It is the default remote backend behind the resilient
// wrapper; callers never see its errors directly.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/mariselli/hoofprint/internal/storage"
	"github.com/mariselli/hoofprint/pkg/types"
)

// Store persists all four record families in PostgreSQL.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS leads (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	title TEXT DEFAULT '',
	role TEXT DEFAULT '',
	company_id TEXT DEFAULT '',
	company_name TEXT NOT NULL,
	email TEXT DEFAULT '',
	linkedin TEXT DEFAULT '',
	whatsapp TEXT DEFAULT '',
	whatsapp_opt_in BOOLEAN NOT NULL DEFAULT FALSE,
	categories JSONB,
	notes TEXT DEFAULT '',
	status TEXT NOT NULL,
	deal_stage TEXT DEFAULT '',
	temperature TEXT DEFAULT '',
	scoring JSONB,
	reminders JSONB,
	source TEXT DEFAULT '',
	discovered_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);

CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT DEFAULT '',
	title TEXT DEFAULT '',
	role TEXT DEFAULT '',
	company_name TEXT NOT NULL,
	email TEXT DEFAULT '',
	linkedin TEXT DEFAULT '',
	whatsapp TEXT DEFAULT '',
	whatsapp_opt_in BOOLEAN NOT NULL DEFAULT FALSE,
	categories JSONB,
	notes TEXT DEFAULT '',
	deal_stage TEXT DEFAULT '',
	temperature TEXT DEFAULT '',
	scoring JSONB,
	reminders JSONB,
	source TEXT DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	month TEXT DEFAULT '',
	year INTEGER DEFAULT 0,
	dates TEXT DEFAULT '',
	location TEXT DEFAULT '',
	organizer TEXT DEFAULT '',
	organizer_email TEXT DEFAULT '',
	organizer_phone TEXT DEFAULT '',
	category TEXT DEFAULT '',
	reminders JSONB,
	discovered_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS memory_entries (
	id TEXT PRIMARY KEY,
	entity_id TEXT NOT NULL,
	type TEXT DEFAULT '',
	category TEXT DEFAULT '',
	content TEXT NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL,
	metadata JSONB
);
CREATE INDEX IF NOT EXISTS idx_entries_entity ON memory_entries(entity_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON memory_entries(timestamp);
`

// New connects to the database described by dsn and applies the schema.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func marshalJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}

func unmarshalJSON(s sql.NullString, v interface{}) {
	if s.Valid && s.String != "" && s.String != "null" {
		_ = json.Unmarshal([]byte(s.String), v)
	}
}

func (s *Store) UpsertLead(ctx context.Context, lead *types.Lead) error {
	query := `
		INSERT INTO leads (
			id, name, title, role, company_id, company_name, email, linkedin,
			whatsapp, whatsapp_opt_in, categories, notes, status, deal_stage,
			temperature, scoring, reminders, source, discovered_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, title = EXCLUDED.title, role = EXCLUDED.role,
			company_id = EXCLUDED.company_id, company_name = EXCLUDED.company_name,
			email = EXCLUDED.email, linkedin = EXCLUDED.linkedin,
			whatsapp = EXCLUDED.whatsapp, whatsapp_opt_in = EXCLUDED.whatsapp_opt_in,
			categories = EXCLUDED.categories, notes = EXCLUDED.notes,
			status = EXCLUDED.status, deal_stage = EXCLUDED.deal_stage,
			temperature = EXCLUDED.temperature, scoring = EXCLUDED.scoring,
			reminders = EXCLUDED.reminders, source = EXCLUDED.source
	`
	_, err := s.db.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Title, string(lead.Role), lead.CompanyID,
		lead.CompanyName, lead.Email, lead.LinkedIn, lead.WhatsApp,
		lead.WhatsAppOptIn, marshalJSON(lead.Categories), lead.Notes,
		string(lead.Status), lead.DealStage, string(lead.Temperature),
		marshalJSON(lead.Scoring), marshalJSON(lead.Reminders), lead.Source,
		lead.DiscoveredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert lead: %w", err)
	}
	return nil
}

const leadColumns = `id, name, title, role, company_id, company_name, email,
	linkedin, whatsapp, whatsapp_opt_in, categories, notes, status, deal_stage,
	temperature, scoring, reminders, source, discovered_at`

func scanLead(scan func(...interface{}) error) (*types.Lead, error) {
	var lead types.Lead
	var role, status, temperature string
	var categoriesJSON, scoringJSON, remindersJSON sql.NullString
	err := scan(
		&lead.ID, &lead.Name, &lead.Title, &role, &lead.CompanyID,
		&lead.CompanyName, &lead.Email, &lead.LinkedIn, &lead.WhatsApp,
		&lead.WhatsAppOptIn, &categoriesJSON, &lead.Notes, &status,
		&lead.DealStage, &temperature, &scoringJSON, &remindersJSON,
		&lead.Source, &lead.DiscoveredAt,
	)
	if err != nil {
		return nil, err
	}
	lead.Role = types.Role(role)
	lead.Status = types.LeadStatus(status)
	lead.Temperature = types.Temperature(temperature)
	unmarshalJSON(categoriesJSON, &lead.Categories)
	unmarshalJSON(scoringJSON, &lead.Scoring)
	unmarshalJSON(remindersJSON, &lead.Reminders)
	return &lead, nil
}

func (s *Store) GetLead(ctx context.Context, id string) (*types.Lead, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row.Scan)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return lead, nil
}

func (s *Store) ListLeads(ctx context.Context) ([]types.Lead, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY discovered_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []types.Lead
	for rows.Next() {
		lead, err := scanLead(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func (s *Store) UpdateLeadStatus(ctx context.Context, ids []string, status types.LeadStatus) error {
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, `UPDATE leads SET status = $1 WHERE id = $2`, string(status), id); err != nil {
			return fmt.Errorf("failed to update lead status: %w", err)
		}
	}
	return nil
}

func (s *Store) UpsertContact(ctx context.Context, contact *types.Contact) error {
	query := `
		INSERT INTO contacts (
			id, first_name, last_name, title, role, company_name, email,
			linkedin, whatsapp, whatsapp_opt_in, categories, notes, deal_stage,
			temperature, scoring, reminders, source, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
			title = EXCLUDED.title, role = EXCLUDED.role,
			company_name = EXCLUDED.company_name, email = EXCLUDED.email,
			linkedin = EXCLUDED.linkedin, whatsapp = EXCLUDED.whatsapp,
			whatsapp_opt_in = EXCLUDED.whatsapp_opt_in,
			categories = EXCLUDED.categories, notes = EXCLUDED.notes,
			deal_stage = EXCLUDED.deal_stage, temperature = EXCLUDED.temperature,
			scoring = EXCLUDED.scoring, reminders = EXCLUDED.reminders,
			source = EXCLUDED.source
	`
	_, err := s.db.ExecContext(ctx, query,
		contact.ID, contact.FirstName, contact.LastName, contact.Title,
		string(contact.Role), contact.CompanyName, contact.Email,
		contact.LinkedIn, contact.WhatsApp, contact.WhatsAppOptIn,
		marshalJSON(contact.Categories), contact.Notes, contact.DealStage,
		string(contact.Temperature), marshalJSON(contact.Scoring),
		marshalJSON(contact.Reminders), contact.Source, contact.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert contact: %w", err)
	}
	return nil
}

const contactColumns = `id, first_name, last_name, title, role, company_name,
	email, linkedin, whatsapp, whatsapp_opt_in, categories, notes, deal_stage,
	temperature, scoring, reminders, source, created_at`

func scanContact(scan func(...interface{}) error) (*types.Contact, error) {
	var contact types.Contact
	var role, temperature string
	var categoriesJSON, scoringJSON, remindersJSON sql.NullString
	err := scan(
		&contact.ID, &contact.FirstName, &contact.LastName, &contact.Title,
		&role, &contact.CompanyName, &contact.Email, &contact.LinkedIn,
		&contact.WhatsApp, &contact.WhatsAppOptIn, &categoriesJSON,
		&contact.Notes, &contact.DealStage, &temperature, &scoringJSON,
		&remindersJSON, &contact.Source, &contact.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	contact.Role = types.Role(role)
	contact.Temperature = types.Temperature(temperature)
	unmarshalJSON(categoriesJSON, &contact.Categories)
	unmarshalJSON(scoringJSON, &contact.Scoring)
	unmarshalJSON(remindersJSON, &contact.Reminders)
	return &contact, nil
}

func (s *Store) GetContact(ctx context.Context, id string) (*types.Contact, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	contact, err := scanContact(row.Scan)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return contact, nil
}

func (s *Store) ListContacts(ctx context.Context) ([]types.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []types.Contact
	for rows.Next() {
		contact, err := scanContact(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, *contact)
	}
	return contacts, rows.Err()
}

func (s *Store) UpsertEvent(ctx context.Context, event *types.EquineEvent) error {
	query := `
		INSERT INTO events (
			id, name, month, year, dates, location, organizer, organizer_email,
			organizer_phone, category, reminders, discovered_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, month = EXCLUDED.month, year = EXCLUDED.year,
			dates = EXCLUDED.dates, location = EXCLUDED.location,
			organizer = EXCLUDED.organizer,
			organizer_email = EXCLUDED.organizer_email,
			organizer_phone = EXCLUDED.organizer_phone,
			category = EXCLUDED.category, reminders = EXCLUDED.reminders
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID, event.Name, event.Month, event.Year, event.Dates,
		event.Location, event.Organizer, event.OrganizerEmail,
		event.OrganizerPhone, event.Category, marshalJSON(event.Reminders),
		event.DiscoveredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert event: %w", err)
	}
	return nil
}

const eventColumns = `id, name, month, year, dates, location, organizer,
	organizer_email, organizer_phone, category, reminders, discovered_at`

func scanEvent(scan func(...interface{}) error) (*types.EquineEvent, error) {
	var event types.EquineEvent
	var remindersJSON sql.NullString
	err := scan(
		&event.ID, &event.Name, &event.Month, &event.Year, &event.Dates,
		&event.Location, &event.Organizer, &event.OrganizerEmail,
		&event.OrganizerPhone, &event.Category, &remindersJSON,
		&event.DiscoveredAt,
	)
	if err != nil {
		return nil, err
	}
	unmarshalJSON(remindersJSON, &event.Reminders)
	return &event, nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*types.EquineEvent, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	event, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *Store) ListEvents(ctx context.Context) ([]types.EquineEvent, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY discovered_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []types.EquineEvent
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

func (s *Store) AppendEntry(ctx context.Context, entry *types.MemoryEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO memory_entries (id, entity_id, type, category, content, timestamp, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.EntityID, entry.Type, string(entry.Category),
		entry.Content, entry.Timestamp, marshalJSON(entry.Metadata),
	)
	if err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}
	return nil
}

const entryColumns = `id, entity_id, type, category, content, timestamp, metadata`

func scanEntry(scan func(...interface{}) error) (*types.MemoryEntry, error) {
	var entry types.MemoryEntry
	var category string
	var metadataJSON sql.NullString
	err := scan(&entry.ID, &entry.EntityID, &entry.Type, &category,
		&entry.Content, &entry.Timestamp, &metadataJSON)
	if err != nil {
		return nil, err
	}
	entry.Category = types.MemoryCategory(category)
	unmarshalJSON(metadataJSON, &entry.Metadata)
	return &entry, nil
}

func (s *Store) ListEntriesByEntity(ctx context.Context, entityID string) ([]types.MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM memory_entries WHERE entity_id = $1 ORDER BY timestamp ASC, id`, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []types.MemoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (s *Store) ListRecentEntries(ctx context.Context, limit int) ([]types.MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM memory_entries ORDER BY timestamp DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent entries: %w", err)
	}
	defer rows.Close()

	var entries []types.MemoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (s *Store) Close() error { return s.db.Close() }
