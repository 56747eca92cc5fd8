package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrInvalidResponseFormat indicates the model reply carried no usable JSON object.
var ErrInvalidResponseFormat = errors.New("ai invalid response format")

// ErrToolLoopExceeded indicates the model kept requesting tool calls past the allowed rounds.
var ErrToolLoopExceeded = errors.New("ai tool loop exceeded")
