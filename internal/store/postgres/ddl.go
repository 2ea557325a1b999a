package postgres

// Schema for the remote backend. Targets and folders are separate addressable
// rows scoped by user and project; the relevant keyword list is an embedded
// JSONB blob on the target row, not its own table.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS main_targets (
    user_id           TEXT        NOT NULL,
    project_id        TEXT        NOT NULL,
    target_id         TEXT        NOT NULL,
    name              TEXT        NOT NULL,
    relevant_keywords JSONB       NOT NULL DEFAULT '[]',
    is_done           BOOLEAN     NOT NULL DEFAULT FALSE,
    completed_at      TIMESTAMPTZ,
    priority          TEXT        NOT NULL DEFAULT 'medium',
    category          TEXT,
    folder_id         TEXT,
    position          INTEGER     NOT NULL,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, project_id, target_id)
);

CREATE TABLE IF NOT EXISTS folders (
    user_id    TEXT        NOT NULL,
    project_id TEXT        NOT NULL,
    folder_id  TEXT        NOT NULL,
    name       TEXT        NOT NULL,
    icon       TEXT,
    color      TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, project_id, folder_id)
);

CREATE INDEX IF NOT EXISTS main_targets_scope_position
    ON main_targets (user_id, project_id, position);
`
