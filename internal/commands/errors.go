package commands

import "errors"

var (
	// ErrNotRegistered means the user never linked a Last.fm account.
	// This is the expected state for most users, not a system fault.
	ErrNotRegistered = errors.New("no linked last.fm account")
	// ErrNoRegisteredMembers means no member of the guild has a linked account.
	ErrNoRegisteredMembers = errors.New("no guild members with linked last.fm accounts")
	// ErrNoQualifyingData means the query ran but nothing matched: an empty
	// listening history, a ranking with no positive play counts, or an
	// aggregate where every member lookup failed.
	ErrNoQualifyingData = errors.New("no listening data matched the query")
	// ErrInvalidQuery means a query string could not be split into its
	// artist and title parts.
	ErrInvalidQuery = errors.New("query must be in the form 'Artist - Title'")
	// ErrNoCrown means no crown has been established for the artist yet.
	ErrNoCrown = errors.New("no crown exists for this artist")
)
