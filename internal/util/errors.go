package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrAssessmentActive   = errors.New("an assessment is already in progress")
	ErrAssessmentComplete = errors.New("assessment already completed")
	ErrNotOwner           = errors.New("assessment does not belong to the acting user")
	ErrChoiceMismatch     = errors.New("selected choice does not belong to the question")
	ErrNoResponses        = errors.New("no responses recorded for the current level")
	ErrInvalidLevel       = errors.New("invalid level code")
	ErrEventTypeRequired  = errors.New("event_type is required")
)
