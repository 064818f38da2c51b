package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantEOF bool
		wantErr bool
	}{
		{"valid", `{"mode":"royalty"}`, false, false},
		{"empty", ``, true, true},
		{"trailing data", `{"mode":"royalty"} {"mode":"donation"}`, false, true},
		{"oversized", `{"mode":"` + strings.Repeat("x", maxBodyBytes) + `"}`, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst tributeModeRequest
			err := decodeJSON(w, r, &dst)
			if !tt.wantErr {
				require.NoError(t, err)
				require.NotNil(t, dst.Mode)
				assert.Equal(t, "royalty", *dst.Mode)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantEOF, err == io.EOF)
		})
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"7", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.SetPathValue("id", tt.raw)
			id, err := pathID(r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func FuzzDecodeTributeRecord(f *testing.F) {
	f.Add(`{"credits":1,"resourceMB":2,"operations":3}`)
	f.Add(`{"credits":1.5}`)
	f.Add(`{"credits":-9223372036854775808,"resourceMB":0,"operations":0}`)
	f.Add(`[]`)
	f.Add(``)
	f.Fuzz(func(t *testing.T, body string) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		w := httptest.NewRecorder()
		var req tributeRecordRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return
		}
		out, err := json.Marshal(req)
		require.NoError(t, err)

		var again tributeRecordRequest
		require.NoError(t, json.Unmarshal(out, &again))
		assert.Equal(t, req, again)
	})
}
