package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/solacejournal/solace-backend/internal/database"
	"github.com/solacejournal/solace-backend/internal/services"
	"github.com/solacejournal/solace-backend/pkg/utils"
)

type SignupRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	RecoveryEmail string `json:"recovery_email,omitempty"` // Optional but recommended
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	RecoveryEmail string `json:"recovery_email"`
}

// AuthResponse returns only anonymous profile data plus the session token.
type AuthResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Token   string                 `json:"token,omitempty"`
	User    map[string]interface{} `json:"user,omitempty"`
}

// Signup handles privacy-first registration: anonymous username plus an
// optional encrypted recovery email.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	if err := utils.ValidateUsername(req.Username); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: err.Error()})
		return
	}
	if len(req.Password) < 8 {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Password must be at least 8 characters"})
		return
	}

	normalizedUsername := utils.NormalizeUsername(req.Username)

	var existingUsername string
	err := database.PostgresDB.QueryRow(
		"SELECT username FROM users WHERE LOWER(username) = $1",
		normalizedUsername,
	).Scan(&existingUsername)
	if err == nil {
		writeJSON(w, http.StatusConflict, AuthResponse{Success: false, Message: "Username is already taken"})
		return
	} else if err != sql.ErrNoRows {
		writeMessage(w, http.StatusInternalServerError, false, "Database error")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "Failed to hash password")
		return
	}

	tx, err := database.PostgresDB.Begin()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "Database error")
		return
	}
	defer tx.Rollback()

	userID := uuid.New()
	_, err = tx.Exec(`
		INSERT INTO users (id, username, password_hash, created_at, is_active)
		VALUES ($1, $2, $3, NOW(), TRUE)
	`, userID, normalizedUsername, hashedPassword)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "Failed to create user")
		return
	}

	if req.RecoveryEmail != "" {
		emailEncrypted, err := utils.Encrypt(req.RecoveryEmail)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, false, "Failed to encrypt recovery email")
			return
		}
		_, err = tx.Exec(`
			INSERT INTO user_recovery (id, user_id, email_encrypted, created_at, updated_at)
			VALUES (gen_random_uuid(), $1, $2, NOW(), NOW())
		`, userID, emailEncrypted)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, false, "Failed to save recovery data")
			return
		}
	}

	if err = tx.Commit(); err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "Database error")
		return
	}

	token, err := services.CreateSession(r.Context(), userID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created successfully",
		Token:   token,
		User: map[string]interface{}{
			"id":         userID.String(),
			"username":   normalizedUsername,
			"created_at": time.Now().UTC(),
		},
	})
}

// Signin authenticates a user and issues a fresh session token.
func Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, false, "Username and password are required")
		return
	}

	normalizedUsername := utils.NormalizeUsername(req.Username)

	var userID uuid.UUID
	var passwordHash string
	var isActive bool
	var createdAt time.Time

	err := database.PostgresDB.QueryRow(`
		SELECT id, password_hash, created_at, is_active
		FROM users
		WHERE LOWER(username) = $1
	`, normalizedUsername).Scan(&userID, &passwordHash, &createdAt, &isActive)

	if err != nil {
		if err == sql.ErrNoRows {
			writeMessage(w, http.StatusUnauthorized, false, "Invalid username or password")
		} else {
			writeMessage(w, http.StatusInternalServerError, false, "Database error")
		}
		return
	}

	if !isActive {
		writeMessage(w, http.StatusForbidden, false, "Account is inactive")
		return
	}

	valid, err := utils.VerifyPassword(req.Password, passwordHash)
	if err != nil || !valid {
		writeMessage(w, http.StatusUnauthorized, false, "Invalid username or password")
		return
	}

	token, err := services.CreateSession(r.Context(), userID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User: map[string]interface{}{
			"id":         userID.String(),
			"username":   normalizedUsername,
			"created_at": createdAt,
		},
	})
}

// GetMe returns the authenticated user's anonymous profile.
func GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	username, err := services.GetUsernameByID(userID)
	if err != nil || username == "" {
		writeMessage(w, http.StatusNotFound, false, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user": map[string]interface{}{
			"id":       userID,
			"username": username,
		},
	})
}

// Signout invalidates the current session.
func Signout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token != "" {
		services.InvalidateSession(r.Context(), token)
	}
	writeMessage(w, http.StatusOK, true, "Signed out")
}

// ForgotPassword always responds success so account existence is never
// revealed. Reset delivery happens out of band.
func ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}
	if req.RecoveryEmail == "" {
		writeMessage(w, http.StatusBadRequest, false, "Recovery email is required")
		return
	}

	writeMessage(w, http.StatusOK, true, "If an account exists with this email, you will receive a password reset link.")
}
