package versions

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfoWithValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		version         string
		commit          string
		buildDate       string
		expectedVersion string
	}{
		{
			name:            "release version is passed through",
			version:         "1.2.3",
			commit:          "abcdef1234567890",
			buildDate:       unknownStr,
			expectedVersion: "1.2.3",
		},
		{
			name:            "dev version is derived from commit",
			version:         "dev",
			commit:          "abcdef1234567890",
			buildDate:       unknownStr,
			expectedVersion: "build-abcdef12",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			info := getVersionInfoWithValues(tc.version, tc.commit, tc.buildDate)
			assert.Equal(t, tc.expectedVersion, info.Version)
			assert.Equal(t, runtime.Version(), info.GoVersion)
			assert.NotEmpty(t, info.Platform)
		})
	}
}

func TestGetVersionInfoFormatsBuildDate(t *testing.T) {
	t.Parallel()

	info := getVersionInfoWithValues("1.0.0", "deadbeef", "2026-01-02T15:04:05Z")
	assert.Equal(t, "2026-01-02 15:04:05 UTC", info.BuildDate)
}
