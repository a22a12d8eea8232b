package app

import "serotonyl.ru/repost-bot/internal/db/postgres"

// Migrations: схема БД. SQL-миграции встроены в код для упрощения деплоя.
// Новые версии только дописываются в конец.
var Migrations = []postgres.Migration{
	{Version: 1, Name: "chats", SQL: migration001Chats},
	{Version: 2, Name: "chat_admins", SQL: migration002ChatAdmins},
	{Version: 3, Name: "users", SQL: migration003Users},
	{Version: 4, Name: "chat_users", SQL: migration004ChatUsers},
	{Version: 5, Name: "posts", SQL: migration005Posts},
	{Version: 6, Name: "reactions", SQL: migration006Reactions},
}

var migration001Chats = `
CREATE TABLE IF NOT EXISTS chats (
    telegram_chat_id BIGINT PRIMARY KEY,
    title VARCHAR(255),
    hashtag VARCHAR(255),
    reaction_emoji VARCHAR(32),
    topic_id BIGINT,
    created_at TIMESTAMP DEFAULT NOW()
);
`

var migration002ChatAdmins = `
CREATE TABLE IF NOT EXISTS chat_admins (
    id BIGSERIAL PRIMARY KEY,
    chat_id BIGINT NOT NULL REFERENCES chats(telegram_chat_id) ON DELETE CASCADE,
    telegram_user_id BIGINT NOT NULL,
    created_at TIMESTAMP DEFAULT NOW(),
    UNIQUE (chat_id, telegram_user_id)
);
`

var migration003Users = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    telegram_id BIGINT UNIQUE NOT NULL,
    username VARCHAR(255),
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_username_lower ON users(LOWER(username));
`

var migration004ChatUsers = `
CREATE TABLE IF NOT EXISTS chat_users (
    chat_id BIGINT NOT NULL REFERENCES chats(telegram_chat_id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    points DOUBLE PRECISION NOT NULL DEFAULT 0,
    weight DOUBLE PRECISION NOT NULL DEFAULT 1 CHECK (weight > 0),
    updated_at TIMESTAMP DEFAULT NOW(),
    PRIMARY KEY (chat_id, user_id)
);
CREATE INDEX IF NOT EXISTS idx_chat_users_points ON chat_users(chat_id, points DESC);
`

var migration005Posts = `
CREATE TABLE IF NOT EXISTS posts (
    id BIGSERIAL PRIMARY KEY,
    chat_id BIGINT NOT NULL REFERENCES chats(telegram_chat_id) ON DELETE CASCADE,
    message_id BIGINT NOT NULL,
    topic_id BIGINT,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP DEFAULT NOW(),
    UNIQUE (chat_id, message_id)
);
CREATE INDEX IF NOT EXISTS idx_posts_user ON posts(chat_id, user_id);
`

var migration006Reactions = `
CREATE TABLE IF NOT EXISTS reactions (
    id BIGSERIAL PRIMARY KEY,
    post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    reactor_user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP DEFAULT NOW(),
    UNIQUE (post_id, reactor_user_id)
);
CREATE INDEX IF NOT EXISTS idx_reactions_reactor ON reactions(reactor_user_id);
`
