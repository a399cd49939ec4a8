package conf

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDefaults(t *testing.T) *Settings {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	setDefaultConfig()
	settings := &Settings{}
	require.NoError(t, viper.Unmarshal(settings))
	return settings
}

func TestDefaults(t *testing.T) {
	s := loadDefaults(t)

	assert.Equal(t, 3000, s.Server.Port)
	assert.Equal(t, "Contestants", s.Sheets.ContestantsSheet)
	assert.Equal(t, "Votes", s.Sheets.VotesSheet)
	assert.Equal(t, "Asia/Manila", s.Sheets.Timezone)
	assert.Equal(t, 12*time.Hour, s.Admin.TokenTTL)
	assert.True(t, s.Ballot.RequireGuardian)
	assert.True(t, s.Server.RateLimit.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(s *Settings) {},
		},
		{
			name:    "missing spreadsheet id",
			mutate:  func(s *Settings) { s.Sheets.SpreadsheetID = "" },
			wantErr: "spreadsheetid",
		},
		{
			name:    "missing admin password",
			mutate:  func(s *Settings) { s.Admin.Password = "" },
			wantErr: "admin.password",
		},
		{
			name:    "empty table name",
			mutate:  func(s *Settings) { s.Sheets.VotesSheet = "" },
			wantErr: "table names",
		},
		{
			name:    "bad port",
			mutate:  func(s *Settings) { s.Server.Port = 0 },
			wantErr: "out of range",
		},
		{
			name:    "bad timezone",
			mutate:  func(s *Settings) { s.Sheets.Timezone = "Mars/Olympus" },
			wantErr: "timezone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadDefaults(t)
			s.Sheets.SpreadsheetID = "sheet-id"
			s.Admin.Password = "hunter2"
			tt.mutate(s)

			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
