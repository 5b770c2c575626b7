package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Recall resolves a "!N" reference against the history ring and replays the
// command it names. The recalled raw text is recorded again under a fresh
// ID before dispatch, exactly as if it had been typed anew; the old ID is
// not resurrected. Composes the tokenizer, the ring and the executor
// without duplicating any of their logic.
func (s *Shell) Recall(token string) (Outcome, error) {
	id, ok := parseEventRef(token)
	if !ok || id < 1 || id >= s.History.NextID() {
		fmt.Fprintf(s.Stdout(), "%s: event not found\n", token)
		s.logRecallMiss(token)
		return EventNotFound, nil
	}

	raw, ok := s.History.Lookup(id)
	if !ok {
		// The entry was overwritten; its ID is gone for good.
		fmt.Fprintf(s.Stdout(), "%s: event not found\n", token)
		s.logRecallMiss(token)
		return EventNotFound, nil
	}

	argv, background := Tokenize(raw)
	s.History.Record(raw)

	outcome, err := s.Dispatch(argv, background)
	if err != nil {
		return outcome, err
	}
	s.logCommand(raw, argv, background, outcome)
	return outcome, nil
}

// parseEventRef parses a "!N" token. Parsing is strict: anything after the
// digits invalidates the reference, so "!3abc" does not name event 3.
func parseEventRef(token string) (uint, bool) {
	digits := strings.TrimPrefix(token, "!")
	if digits == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
