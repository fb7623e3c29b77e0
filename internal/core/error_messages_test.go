package core

import (
	"context"
	"io/fs"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/fifastats/internal/roster"
	"github.com/JonMunkholm/fifastats/internal/tableload"
)

func loadFailure(cause error) error {
	return &tableload.LoadFailure{Path: "f.csv", Err: errors.WithStack(cause)}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil", nil, ""},
		{"missing file", loadFailure(fs.ErrNotExist), "LOAD001"},
		{"permission", loadFailure(fs.ErrPermission), "LOAD002"},
		{"other load", loadFailure(errors.New("is a directory")), "LOAD003"},
		{"conversion", &roster.FieldConversionFailure{Field: "age", Column: 3, Row: 4, Value: "x"}, "CONV001"},
		{"wrapped conversion", errors.Wrap(&roster.FieldConversionFailure{Field: "overall"}, "dataset \"FIFA 20\""), "CONV001"},
		{"unknown dataset", errors.Wrapf(ErrUnknownDataset, "dataset %q", "FIFA 99"), "DS001"},
		{"busy", ErrTooManyBuilds, "SRV001"},
		{"cancelled", context.Canceled, "REQ001"},
		{"cancelled load", loadFailure(context.Canceled), "REQ001"},
		{"timeout", errors.Wrap(context.DeadlineExceeded, "run"), "REQ002"},
		{"unknown", errors.New("something odd"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, MapError(tt.err).Code)
		})
	}
}

func TestFormatUserError(t *testing.T) {
	assert.Equal(t, "", FormatUserError(nil))
	assert.Equal(t,
		"Too many report builds in progress (Code: SRV001). Please wait a moment and try again",
		FormatUserError(ErrTooManyBuilds))
}

func TestIsUserFacing(t *testing.T) {
	assert.False(t, IsUserFacing(nil))
	assert.False(t, IsUserFacing(errors.New("boom")))
	assert.True(t, IsUserFacing(ErrUnknownDataset))
}

func TestNewUserError(t *testing.T) {
	assert.Nil(t, NewUserError(nil))

	cause := loadFailure(fs.ErrNotExist)
	ue := NewUserError(cause)
	require.NotNil(t, ue)
	assert.Equal(t, "Dataset file not found", ue.Error())
	assert.Equal(t, "LOAD001", ue.User.Code)
	assert.True(t, errors.Is(ue, fs.ErrNotExist))
}
