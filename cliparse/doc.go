// Copyright (c) 2026 The Pollcast Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables. Flags win over env; env wins over defaults.

Settings:

  - PORT (-p): server port, default 3318
  - DATABASE_URL (-d): connection string, required
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - SESSION_TOKEN_SALT (--session-salt): secret for session token HMAC,
    required
  - SEED_DEMO (-seed-demo): insert demo polls once at startup

main loads a .env file (via joho/godotenv) before ParseFlags runs, so a
local .env behaves like exported environment variables.
*/
package cliparse
