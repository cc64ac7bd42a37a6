package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AnshRaj112/mindjournal-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", &services.Error{Kind: services.KindValidation, Message: "bad"}, http.StatusBadRequest, `{"message":"bad"}`},
		{"not found", &services.Error{Kind: services.KindNotFound, Message: "Journal not found"}, http.StatusNotFound, `{"message":"Journal not found"}`},
		{"forbidden", &services.Error{Kind: services.KindForbidden, Message: "Access denied"}, http.StatusForbidden, `{"message":"Access denied"}`},
		{"provider", &services.Error{Kind: services.KindProvider, Message: "Analysis failed", Err: errors.New("timeout")}, http.StatusInternalServerError, `{"message":"Analysis failed","error":"timeout"}`},
		{"store", &services.Error{Kind: services.KindStore, Message: "Server error", Err: errors.New("db down")}, http.StatusInternalServerError, `{"message":"Server error","error":"db down"}`},
		{"validation hides cause", &services.Error{Kind: services.KindValidation, Message: "quota", Err: errors.New("youtube: quota")}, http.StatusBadRequest, `{"message":"quota"}`},
		{"unknown", errors.New("weird"), http.StatusInternalServerError, `{"message":"Server error","error":"weird"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, zap.NewNop(), tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestWriteServiceErrorLogsKindOfServerFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	writeServiceError(httptest.NewRecorder(), logger, &services.Error{Kind: services.KindValidation, Message: "bad"})
	assert.Zero(t, logs.Len())

	writeServiceError(httptest.NewRecorder(), logger, &services.Error{Kind: services.KindProvider, Message: "Analysis failed", Err: errors.New("timeout")})
	entries := logs.FilterMessage("request failed").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "provider_failure", entries[0].ContextMap()["kind"])
	}
}

func TestRequireUserWithoutAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	_, ok := requireUser(rec, httptest.NewRequest("GET", "/api/journals", nil))
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDecodeJSONRejectsMalformedBody(t *testing.T) {
	var dst UpdateJournalRequest

	rec := httptest.NewRecorder()
	ok := decodeJSON(rec, httptest.NewRequest("PUT", "/", strings.NewReader("{nope")), &dst)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid request body"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	ok = decodeJSON(rec, httptest.NewRequest("PUT", "/", strings.NewReader(`{"isPrivate":false}`)), &dst)
	assert.True(t, ok)
	if assert.NotNil(t, dst.IsPrivate) {
		assert.False(t, *dst.IsPrivate)
	}
	assert.Nil(t, dst.Title)
}
