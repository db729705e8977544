package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := NewLoginRateLimiter(3, time.Minute)
	defer rl.Close()

	for i := 1; i <= 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("attempt %d rejected, limit is 3", i)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("attempt 4 allowed past a limit of 3")
	}
}

func TestAllowIsPerIP(t *testing.T) {
	rl := NewLoginRateLimiter(1, time.Minute)
	defer rl.Close()

	if !rl.Allow("1.1.1.1") {
		t.Fatal("first attempt for first IP rejected")
	}
	if rl.Allow("1.1.1.1") {
		t.Fatal("second attempt for first IP allowed")
	}
	if !rl.Allow("2.2.2.2") {
		t.Fatal("blocked IP bled into a different IP's bucket")
	}
}

func TestWindowElapses(t *testing.T) {
	rl := NewLoginRateLimiter(1, 20*time.Millisecond)
	defer rl.Close()

	rl.Allow("1.2.3.4")
	if rl.Allow("1.2.3.4") {
		t.Fatal("second attempt inside the window allowed")
	}

	time.Sleep(30 * time.Millisecond)

	if !rl.Allow("1.2.3.4") {
		t.Fatal("attempt after the window elapsed still rejected")
	}
}

func TestResetClearsBucket(t *testing.T) {
	rl := NewLoginRateLimiter(1, time.Minute)
	defer rl.Close()

	rl.Allow("1.2.3.4")
	if rl.Allow("1.2.3.4") {
		t.Fatal("limit not enforced before Reset")
	}

	rl.Reset("1.2.3.4")

	if !rl.Allow("1.2.3.4") {
		t.Fatal("attempt after Reset rejected")
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	rl := NewLoginRateLimiter(1, time.Minute)
	defer rl.Close()

	if got := rl.RetryAfterSeconds("1.2.3.4"); got != 0 {
		t.Fatalf("RetryAfterSeconds for unseen IP = %d, want 0", got)
	}

	rl.Allow("1.2.3.4")

	got := rl.RetryAfterSeconds("1.2.3.4")
	if got < 1 || got > 61 {
		t.Fatalf("RetryAfterSeconds = %d, want a value inside the window", got)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "10.0.0.1:54321",
			want:       "10.0.0.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "10.0.0.1",
			want:       "10.0.0.1",
		},
		{
			name:       "x-forwarded-for single hop",
			remoteAddr: "10.0.0.1:54321",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for chain takes first hop",
			remoteAddr: "10.0.0.1:54321",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2, 10.0.0.3"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:54321",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
		{
			name:       "x-forwarded-for beats x-real-ip",
			remoteAddr: "10.0.0.1:54321",
			headers: map[string]string{
				"X-Forwarded-For": "203.0.113.7",
				"X-Real-IP":       "203.0.113.9",
			},
			want: "203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/auth/login", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ExtractIP(r); got != tt.want {
				t.Errorf("ExtractIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatRetryMessage(t *testing.T) {
	if got := FormatRetryMessage(45); got != "45 second(s)" {
		t.Errorf("FormatRetryMessage(45) = %q", got)
	}
	if got := FormatRetryMessage(120); got != "2 minute(s)" {
		t.Errorf("FormatRetryMessage(120) = %q", got)
	}
}
