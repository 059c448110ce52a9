package sensor

import (
	"fmt"
	"strconv"
	"strings"
)

// Script replays a fixed sample sequence, optionally looping
// Not safe for concurrent use, Feed is its only caller
type Script struct {
	samples []int
	pos     int
	loop    bool
}

// NewScript copies samples into a replay source
func NewScript(samples []int, loop bool) *Script {
	return &Script{
		samples: append([]int(nil), samples...),
		loop:    loop,
	}
}

// ParseScript reads a comma or whitespace separated list of integers
func ParseScript(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]int, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("sample %d %q: %w", i, f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Sample implements Source, reporting false once a non-looping script is exhausted
func (s *Script) Sample() (int, bool) {
	if len(s.samples) == 0 {
		return 0, false
	}
	if s.pos >= len(s.samples) {
		if !s.loop {
			return 0, false
		}
		s.pos = 0
	}
	v := s.samples[s.pos]
	s.pos++
	return v, true
}

// Remaining returns the samples left before the script ends, -1 when looping
func (s *Script) Remaining() int {
	if s.loop {
		return -1
	}
	return len(s.samples) - s.pos
}
