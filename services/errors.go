package services

import "errors"

// Sentinel errors returned by the job, technician and rating services.
// Handlers branch on these to pick the HTTP status and error code.
var (
	ErrJobNotFound        = errors.New("job not found")
	ErrTechnicianNotFound = errors.New("technician not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidIssueType   = errors.New("issue type must be one of: battery, panel, wiring, inverter")
	ErrEmptyCluster       = errors.New("cluster must not be empty")
	ErrInvalidStatus      = errors.New("unknown job status")
	ErrInvalidTransition  = errors.New("status change is not a valid forward transition")
	ErrInvalidScore       = errors.New("score must be an integer between 1 and 5")
	ErrJobNotCompleted    = errors.New("job is not completed")
	ErrJobNotRatable      = errors.New("job has no assigned technician to rate")
	ErrRatingExists       = errors.New("job has already been rated")
	ErrNotJobOwner        = errors.New("job does not belong to this user")
	ErrInvalidAmount      = errors.New("amount must be positive")
)
