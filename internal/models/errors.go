package models

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrContextNotFound  = errors.New("context entry not found")

	ErrTitleTooShort   = errors.New("title must be at least 3 characters")
	ErrBadCategoryName = errors.New("category name is required")
	ErrContentTooShort = errors.New("context content is too short")
	ErrPastDeadline    = errors.New("deadline cannot be in the past")
	ErrBadStatus       = errors.New("invalid task status")
	ErrBadSourceType   = errors.New("invalid source type")
)
