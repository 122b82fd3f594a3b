package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"roga/internal/llm"
	"roga/models"
)

var errBoom = errors.New("boom")

// fakeGenerator answers with fn, or pops replies in order when fn is nil.
type fakeGenerator struct {
	mu      sync.Mutex
	fn      func(llm.Request) (string, error)
	replies []string
	calls   []llm.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.fn != nil {
		return f.fn(req)
	}
	if len(f.replies) == 0 {
		return "", errBoom
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

func (f *fakeGenerator) Calls() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.Request(nil), f.calls...)
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func (c *memoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memoryCache) Set(_ context.Context, key string, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if c.items == nil {
		c.items = map[string][]byte{}
	}
	c.items[key] = b
	return nil
}

type recordingSink struct {
	mu     sync.Mutex
	rounds []models.RoundTelemetry
	err    error
}

func (s *recordingSink) RecordRound(_ context.Context, t models.RoundTelemetry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds = append(s.rounds, t)
	return s.err
}

func scorecardJSON(score int) string {
	return `{"score":` + itoa(score) + `,"rubric":[` +
		`{"key":"clarity","label":"Clarity","status":"good","note":"Specific"},` +
		`{"key":"depth","label":"Depth","status":"good","note":"Probes causes"},` +
		`{"key":"insight","label":"Insight","status":"warn","note":"Familiar angle"},` +
		`{"key":"openness","label":"Openness","status":"good","note":"Invites detail"}],` +
		`"proTip":"Name the metric you care about."}`
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
