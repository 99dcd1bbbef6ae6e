package app

import (
	"errors"

	"github.com/khrees2412/talentmatch/internal/database"
)

// Sentinel errors for common application errors
var (
	ErrNotFound        = database.ErrNotFound
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotInitialized  = errors.New("application not initialized")
)
