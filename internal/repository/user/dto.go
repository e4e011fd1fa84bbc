package user

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Mccullahz/go-getta-job/internal/domain"
)

// userToHash converts a domain User into a flat map[string]string for HSET.
func userToHash(u *domain.User) map[string]string {
	return map[string]string{
		"username":      u.Username,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"created_at":    strconv.FormatInt(u.CreatedAt.UnixMilli(), 10),
	}
}

// userFromHash converts a flat hash map back into a domain User.
func userFromHash(id string, m map[string]string) (domain.User, error) {
	millis, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domain.User{}, fmt.Errorf("parse created_at of user %s: %w", id, err)
	}

	return domain.User{
		ID:           id,
		Username:     m["username"],
		Email:        m["email"],
		PasswordHash: m["password_hash"],
		CreatedAt:    time.UnixMilli(millis).UTC(),
	}, nil
}
