package csa

import (
	"fmt"
	"math"
	"time"
)

// Largest field values whose durations fit in a time.Duration.
const (
	maxLimitHours = (math.MaxInt64 - int64(59*time.Minute)) / int64(time.Hour)
	maxSeconds    = math.MaxInt64 / int64(time.Second)
)

func (s *scanner) date() (Time, bool) {
	start := s.pos
	year, ok := s.digits(4)
	if !ok {
		return Time{}, false
	}
	if !s.literal("/") {
		s.pos = start
		return Time{}, false
	}
	month, ok := s.ranged(2, 1, 12, "month 01-12")
	if !ok {
		s.pos = start
		return Time{}, false
	}
	if !s.literal("/") {
		s.pos = start
		return Time{}, false
	}
	day, ok := s.ranged(2, 1, 31, "day 01-31")
	if !ok {
		s.pos = start
		return Time{}, false
	}
	return Time{Year: year, Month: month, Day: day}, true
}

func (s *scanner) clock() (Clock, bool) {
	start := s.pos
	hour, ok := s.ranged(2, 0, 23, "hour 00-23")
	if !ok {
		return Clock{}, false
	}
	if !s.literal(":") {
		s.pos = start
		return Clock{}, false
	}
	minute, ok := s.ranged(2, 0, 59, "minute 00-59")
	if !ok {
		s.pos = start
		return Clock{}, false
	}
	if !s.literal(":") {
		s.pos = start
		return Clock{}, false
	}
	second, ok := s.ranged(2, 0, 59, "second 00-59")
	if !ok {
		s.pos = start
		return Clock{}, false
	}
	return Clock{Hour: hour, Minute: minute, Second: second}, true
}

// timestamp is a date optionally followed by a space and a clock time.
func (s *scanner) timestamp() (Time, bool) {
	t, ok := s.date()
	if !ok {
		return Time{}, false
	}
	mark := s.pos
	if s.literal(" ") {
		if c, ok := s.clock(); ok {
			t.Clock = &c
			return t, true
		}
	}
	s.pos = mark
	return t, true
}

// timeLimit is HH:MM+SS where the hour and byoyomi fields have any width.
func (s *scanner) timeLimit() (TimeLimit, bool) {
	start := s.pos
	hours, ok := s.numberUpTo(maxLimitHours, "hours in range")
	if !ok {
		return TimeLimit{}, false
	}
	if !s.literal(":") {
		s.pos = start
		return TimeLimit{}, false
	}
	minutes, ok := s.ranged(2, 0, 59, "minute 00-59")
	if !ok {
		s.pos = start
		return TimeLimit{}, false
	}
	if !s.literal("+") {
		s.pos = start
		return TimeLimit{}, false
	}
	byoyomi, ok := s.numberUpTo(maxSeconds, "seconds in range")
	if !ok {
		s.pos = start
		return TimeLimit{}, false
	}
	return TimeLimit{
		MainTime: time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute,
		Byoyomi:  time.Duration(byoyomi) * time.Second,
	}, true
}

// ParseTime parses "YYYY/MM/DD" or "YYYY/MM/DD HH:MM:SS".
func ParseTime(text string) (Time, error) {
	s := newScanner(text)
	t, ok := s.timestamp()
	if !ok || !s.eof() {
		return Time{}, fmt.Errorf("invalid time %q: %w", text, s.parseError())
	}
	return t, nil
}

// ParseTimeLimit parses a time limit such as "00:25+00".
func ParseTimeLimit(text string) (TimeLimit, error) {
	s := newScanner(text)
	tl, ok := s.timeLimit()
	if !ok || !s.eof() {
		return TimeLimit{}, fmt.Errorf("invalid time limit %q: %w", text, s.parseError())
	}
	return tl, nil
}
