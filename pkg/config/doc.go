// Package config loads application configuration from environment
// variables.
//
// # Overview
//
// All settings live under the TASKD_ prefix and have working defaults
// for development. LoadConfig reads the environment once at startup and
// validates the result; there is no hot reload.
//
// # Environment Variables
//
//	TASKD_HOST                 - Listen host (default 0.0.0.0)
//	TASKD_PORT                 - API port (default 8080)
//	TASKD_OPS_PORT             - Probes/metrics port (default 9090)
//	TASKD_READ_TIMEOUT         - HTTP read timeout (default 15s)
//	TASKD_WRITE_TIMEOUT        - HTTP write timeout (default 15s)
//	TASKD_IDLE_TIMEOUT         - HTTP idle timeout (default 60s)
//	TASKD_SHUTDOWN_TIMEOUT     - Graceful shutdown window (default 30s)
//	TASKD_ENV                  - development or production
//	TASKD_CORS_ORIGINS         - Comma-separated allowed origins (default *)
//	TASKD_MAX_BODY_BYTES       - Request body cap (default 1 MiB)
//	TASKD_JWT_SECRET           - Token signing secret (required in production)
//	TASKD_TOKEN_TTL            - Session token validity (default 24h)
//	TASKD_BCRYPT_COST          - Password hash cost (default 10)
//	TASKD_LOG_LEVEL            - debug, info, warn, error (default info)
//	TASKD_METRICS_ENABLED      - Prometheus metrics toggle (default true)
//	TASKD_SEED_ADMIN_EMAIL     - Optional account created at startup
//	TASKD_SEED_ADMIN_PASSWORD  - Password for the seed account
//	TASKD_SEED_ADMIN_NAME      - Name for the seed account (default Admin)
package config
