package database

// schema is the DDL for the event-publishing service. Statements are
// idempotent so the bootstrap can run on every start.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id    TEXT PRIMARY KEY,
    name  TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS categories (
    id   TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS events (
    id                 TEXT PRIMARY KEY,
    title              TEXT NOT NULL,
    annotation         TEXT NOT NULL DEFAULT '',
    description        TEXT NOT NULL DEFAULT '',
    category_id        TEXT NOT NULL REFERENCES categories (id),
    initiator_id       TEXT NOT NULL REFERENCES users (id),
    lat                DOUBLE PRECISION NOT NULL DEFAULT 0,
    lon                DOUBLE PRECISION NOT NULL DEFAULT 0,
    paid               BOOLEAN NOT NULL DEFAULT FALSE,
    participant_limit  INTEGER NOT NULL DEFAULT 0,
    request_moderation BOOLEAN NOT NULL DEFAULT TRUE,
    state              TEXT NOT NULL,
    event_date         TIMESTAMPTZ NOT NULL,
    created_on         TIMESTAMPTZ NOT NULL,
    published_on       TIMESTAMPTZ,
    confirmed_requests INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_events_initiator ON events (initiator_id);
CREATE INDEX IF NOT EXISTS idx_events_state ON events (state);

CREATE TABLE IF NOT EXISTS requests (
    id           TEXT PRIMARY KEY,
    event_id     TEXT NOT NULL REFERENCES events (id),
    requester_id TEXT NOT NULL REFERENCES users (id),
    status       TEXT NOT NULL,
    created      TIMESTAMPTZ NOT NULL,
    UNIQUE (event_id, requester_id)
);

CREATE TABLE IF NOT EXISTS comments (
    id               TEXT PRIMARY KEY,
    event_id         TEXT NOT NULL REFERENCES events (id),
    author_id        TEXT NOT NULL REFERENCES users (id),
    text             TEXT NOT NULL,
    status           TEXT NOT NULL,
    rejection_reason TEXT NOT NULL DEFAULT '',
    created_at       TIMESTAMPTZ NOT NULL,
    updated_at       TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_event_status ON comments (event_id, status);

CREATE TABLE IF NOT EXISTS compilations (
    id     TEXT PRIMARY KEY,
    title  TEXT NOT NULL UNIQUE,
    pinned BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS compilation_events (
    compilation_id TEXT NOT NULL REFERENCES compilations (id) ON DELETE CASCADE,
    event_id       TEXT NOT NULL REFERENCES events (id),
    PRIMARY KEY (compilation_id, event_id)
);
`
