package domain

import (
	"context"
	"time"
)

// User represents a registered account.
// A user can sign up, obtain a token, author posts, comment and like comments.
type User struct {
	ID          int64      // Unique identifier
	Email       string     // Login email (unique)
	FirstName   string     // Given name
	LastName    string     // Family name
	Password    string     // Bcrypt hashed password
	DateOfBirth *time.Time // Optional date of birth
	CreatedAt   time.Time  // Account creation timestamp
	UpdatedAt   time.Time  // Last profile update timestamp
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id int64) (User, error)

	// GetByEmail retrieves a user by their email.
	// Used during login to verify credentials.
	GetByEmail(ctx context.Context, email string) (User, error)

	// Insert creates a new user account.
	// Backfills the ID in the provided User object upon success.
	Insert(ctx context.Context, u *User) error

	// GetByIDs retrieves users by given IDs.
	GetByIDs(ctx context.Context, ids []int64) ([]User, error)
}

// UserUsecase defines the business logic contract for account operations.
type UserUsecase interface {
	// Register creates a new user account.
	// Returns ErrConflict if the email is already taken.
	Register(ctx context.Context, u *User, password string) error

	// Login verifies user credentials and returns a signed JWT token.
	// Returns ErrNotFound if the user doesn't exist.
	// Returns ErrBadParamInput if the password is incorrect.
	Login(ctx context.Context, email, password string) (string, error)
}
