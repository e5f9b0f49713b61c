package domain

// Field-level validation messages shared by domain types and request DTOs.
const (
	MsgRequired     = "is required"
	MsgMustNotEmpty = "must not be empty"
)
