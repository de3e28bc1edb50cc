package model

import "errors"

// Structural errors. These abort the comparison they occur in and are never
// reported as a mismatch.
var (
	ErrInvalidSpan           = errors.New("invalid span")
	ErrNoSpans               = errors.New("annotation has no spans")
	ErrEmptyMentionName      = errors.New("mention has no name")
	ErrMissingClassMention   = errors.New("annotation has no class mention")
	ErrCoveredTextOutOfRange = errors.New("span exceeds document text")
	ErrMentionCycle          = errors.New("mention tree contains a cycle")
	ErrNoCoveredText         = errors.New("annotation has no covered text")
	ErrCoveredTextMismatch   = errors.New("covered text does not line up with spans")
	ErrUnknownValueType      = errors.New("unknown primitive value type")
)
