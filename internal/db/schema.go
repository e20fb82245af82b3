package db

// SchemaSQL contains the database schema initialization SQL.
// Sessions are full documents keyed by session id with an embedded message
// array; conversation_log rows get auto-generated ids.
const SchemaSQL = `
    -- ==========================================================================
    -- CHAT SESSION TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS chat_session SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS session_id ON chat_session TYPE string;
    DEFINE FIELD IF NOT EXISTS created_at ON chat_session TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS updated_at ON chat_session TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS messages ON chat_session TYPE array DEFAULT [];
    DEFINE FIELD IF NOT EXISTS messages.*.role ON chat_session TYPE string;
    DEFINE FIELD IF NOT EXISTS messages.*.content ON chat_session TYPE string;
    DEFINE FIELD IF NOT EXISTS messages.*.timestamp ON chat_session TYPE datetime;

    DEFINE INDEX IF NOT EXISTS chat_session_sid ON chat_session FIELDS session_id UNIQUE;

    -- ==========================================================================
    -- CONVERSATION LOG TABLE (audit side channel)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS conversation_log SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS timestamp ON conversation_log TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS user_text ON conversation_log TYPE string;
    DEFINE FIELD IF NOT EXISTS bot_text ON conversation_log TYPE string;
    DEFINE FIELD IF NOT EXISTS session_id ON conversation_log TYPE string;
    DEFINE FIELD IF NOT EXISTS origin ON conversation_log TYPE string;

    DEFINE INDEX IF NOT EXISTS conversation_log_session ON conversation_log FIELDS session_id;
`
