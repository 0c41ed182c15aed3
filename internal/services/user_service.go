package services

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/solacejournal/solace-backend/internal/database"
)

// GetUsernameByID retrieves a username by user ID (for anonymous display).
// Returns "" when the user does not exist or is inactive.
func GetUsernameByID(userID string) (string, error) {
	parsedID, err := uuid.Parse(userID)
	if err != nil {
		return "", err
	}

	var username string
	err = database.PostgresDB.QueryRow(`
		SELECT username FROM users WHERE id = $1 AND is_active = TRUE
	`, parsedID).Scan(&username)

	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}

	return username, nil
}
