package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnv(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		name           string
		env            map[string]string
		expected       Config
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - defaults applied",
			env: map[string]string{
				"GITHUB_TOKEN": "abc123",
				"GITHUB_USER":  "any-user",
			},
			expected: Config{
				Token:     "abc123",
				User:      "any-user",
				OutDir:    "assets",
				LangLimit: 10,
			},
		},
		{
			name: "overrides - output dir and language limit",
			env: map[string]string{
				"GITHUB_TOKEN":     "abc123",
				"GITHUB_USER":      "any-user",
				"CARDS_OUT_DIR":    "out",
				"CARDS_LANG_LIMIT": "6",
			},
			expected: Config{
				Token:     "abc123",
				User:      "any-user",
				OutDir:    "out",
				LangLimit: 6,
			},
		},
		{
			name:           "error case - missing token",
			env:            map[string]string{"GITHUB_USER": "any-user"},
			expectError:    true,
			expectedErrMsg: "GITHUB_TOKEN",
		},
		{
			name:           "error case - missing user",
			env:            map[string]string{"GITHUB_TOKEN": "abc123"},
			expectError:    true,
			expectedErrMsg: "GITHUB_USER",
		},
		{
			name: "error case - non-numeric language limit",
			env: map[string]string{
				"GITHUB_TOKEN":     "abc123",
				"GITHUB_USER":      "any-user",
				"CARDS_LANG_LIMIT": "many",
			},
			expectError:    true,
			expectedErrMsg: "CARDS_LANG_LIMIT",
		},
		{
			name: "error case - non-positive language limit",
			env: map[string]string{
				"GITHUB_TOKEN":     "abc123",
				"GITHUB_USER":      "any-user",
				"CARDS_LANG_LIMIT": "0",
			},
			expectError:    true,
			expectedErrMsg: "CARDS_LANG_LIMIT",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(fakeEnv(tc.env))
			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, cfg)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	assert.Error(t, Validate(Config{User: "any-user"}))
	assert.Error(t, Validate(Config{Token: "abc123"}))
	assert.NoError(t, Validate(Config{Token: "abc123", User: "any-user"}))
}
