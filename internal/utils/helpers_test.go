package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/swiftload/loadboard-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		limitStr   string
		offsetStr  string
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{"defaults", "", "", 20, 0, false},
		{"explicit values", "10", "5", 10, 5, false},
		{"max limit", "50", "", 50, 0, false},
		{"limit over max", "51", "", 0, 0, true},
		{"zero limit", "0", "", 0, 0, true},
		{"negative limit", "-1", "", 0, 0, true},
		{"non-numeric limit", "abc", "", 0, 0, true},
		{"negative offset", "", "-1", 0, 0, true},
		{"non-numeric offset", "", "xyz", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset, err := ParseLimitOffset(tt.limitStr, tt.offsetStr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestParseFloatQuery(t *testing.T) {
	value, err := ParseFloatQuery("")
	require.NoError(t, err)
	assert.Equal(t, 0.0, value)

	value, err = ParseFloatQuery("1250.5")
	require.NoError(t, err)
	assert.Equal(t, 1250.5, value)

	_, err = ParseFloatQuery("-10")
	assert.Error(t, err)

	_, err = ParseFloatQuery("heavy")
	assert.Error(t, err)
}

func TestSendErrorStatuses(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrForbidden, http.StatusForbidden},
		{models.ErrInvalidAmount, http.StatusBadRequest},
		{models.ErrLoadNotOpen, http.StatusConflict},
		{models.ErrDuplicatePendingBid, http.StatusConflict},
		{models.ErrIllegalTransition, http.StatusConflict},
		{models.ErrEmailTaken, http.StatusConflict},
		{models.ErrUserRetained, http.StatusConflict},
		{models.ErrConflict, http.StatusConflict},
		{models.ErrIntegrity, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			SendError(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.err.Error(), body["reason"])
		})
	}
}

func TestSendErrorResponseValue(t *testing.T) {
	rec := httptest.NewRecorder()
	SendError(rec, models.NewErrorResponse(http.StatusBadRequest, "invalid status filter"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid status filter", body["reason"])
}

func TestSendErrorUnknown(t *testing.T) {
	rec := httptest.NewRecorder()
	SendError(rec, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["reason"])
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(models.RegisterRequest{
		Role:     models.BidderRole,
		Name:     "Jesse",
		Email:    "jesse@example.com",
		Password: "secret1",
	})
	assert.NoError(t, err)

	err = ValidateRequest(models.RegisterRequest{
		Role:     "dispatcher",
		Email:    "not-an-email",
		Password: "123",
	})
	require.Error(t, err)

	var errResp *models.ErrorResponse
	require.ErrorAs(t, err, &errResp)
	assert.Equal(t, http.StatusBadRequest, errResp.StatusCode)
	assert.Contains(t, errResp.Message, "email must be a valid email")
	assert.Contains(t, errResp.Message, "name is required")
}
