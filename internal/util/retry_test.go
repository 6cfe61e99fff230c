package util

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"timeout message", errors.New("operation timed out"), true},
		{"io error message", errors.New("i/o error on device"), true},
		{"EAGAIN", syscall.EAGAIN, true},
		{"EIO", syscall.EIO, true},
		{"decode error", errors.New("invalid character 'x'"), false},
		{"not found", ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryableError(tt.err); got != tt.expected {
				t.Errorf("IsRetryableError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestRetryWithBackoffSucceedsAfterTransientFailure(t *testing.T) {
	cfg := &RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 10 * time.Millisecond}

	attempts := 0
	result, err := RetryWithBackoff(cfg, func() (string, error) {
		attempts++
		if attempts < 2 {
			return "", errors.New("temporary failure in name resolution")
		}
		return "ok", nil
	}, "test-op")

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q, expected %q", result, "ok")
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, expected 2", attempts)
	}
}

func TestRetryWithBackoffNonRetryableFailsFast(t *testing.T) {
	cfg := &RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 10 * time.Millisecond}

	attempts := 0
	_, err := RetryWithBackoff(cfg, func() (int, error) {
		attempts++
		return 0, fmt.Errorf("decode: %w", ErrMalformed)
	}, "test-op")

	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, expected 1 for non-retryable error", attempts)
	}
}

func TestRetryWithBackoffExhaustsAttempts(t *testing.T) {
	cfg := &RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 2 * time.Millisecond}

	attempts := 0
	_, err := RetryWithBackoff(cfg, func() (int, error) {
		attempts++
		return 0, errors.New("timed out")
	}, "test-op")

	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, expected 3", attempts)
	}
}
