package rest

import (
	"errors"
	"strconv"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

var errInvalidLimit = errors.New("limit must be an integer between 1 and 100")

type ResponseError struct {
	Message string `json:"message"`
}

// parseLimit reads the optional limit query value.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidLimit
	}

	return checkLimit(limit)
}

func checkLimit(limit int) (int, error) {
	if limit < 1 || limit > maxLimit {
		return 0, errInvalidLimit
	}
	return limit, nil
}

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}
