package domain

import "errors"

var (
	// ErrEmptyBank is returned when scoring is attempted over a nil or
	// empty question bank. Scoring must refuse rather than report 0.
	ErrEmptyBank = errors.New("question bank is empty")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrQuestionNotFound indicates a submitted question ID is not in the bank.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a submitted option value is invalid for its question.
	ErrOptionNotFound = errors.New("option not found")
	// ErrMissingRiskScore is returned when the classifier is invoked without a
	// usable work-context category score. Callers choose the fallback, not us.
	ErrMissingRiskScore = errors.New("risk category score unavailable")
	// ErrSessionNotFound is returned when an assessment session has not been started.
	ErrSessionNotFound = errors.New("assessment session not found")
	// ErrInvalidTransition indicates a session command not allowed in the current state.
	ErrInvalidTransition = errors.New("invalid session transition")
	// ErrAnswerRequired blocks advancing past a question that has no answer yet.
	ErrAnswerRequired = errors.New("current question not answered")
	// ErrNoResult is returned when a user has no persisted assessment history.
	ErrNoResult = errors.New("no assessment result")
)
