package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"lesson.mp4":            "lesson.mp4",
		"My Lesson Clip.mp4":    "My-Lesson-Clip.mp4",
		"weird$$name!!.mov":     "weird-name-.mov",
		"../../etc/passwd":      "etc-passwd",
		"already-safe_name.png": "already-safe_name.png",
	}

	for input, want := range cases {
		require.Equal(t, want, SanitizeFileName(input), "input %q", input)
	}
}

func TestBuildObjectKeyShape(t *testing.T) {
	now := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)

	key := BuildObjectKey("video", "intro clip.mp4", now)

	require.True(t, strings.HasPrefix(key, "video/2026/03/07/"), "key %q", key)
	require.True(t, strings.HasSuffix(key, "_intro-clip.mp4"), "key %q", key)

	// The uuid segment keeps two uploads of the same file apart
	other := BuildObjectKey("video", "intro clip.mp4", now)
	require.NotEqual(t, key, other)
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp := GenerateOTP()
		require.Len(t, otp, 6)
		for _, r := range otp {
			require.True(t, r >= '0' && r <= '9', "otp %q", otp)
		}
	}
}
