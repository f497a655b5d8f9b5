package blobsvc

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festify/console/core"
)

const bucket = "festify-test.appspot.com"

func TestDecodePayload(t *testing.T) {
	raw := []byte("GIF89a-not-really")
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name     string
		payload  string
		wantType string
		wantErr  bool
	}{
		{name: "data url", payload: "data:image/jpeg;base64," + encoded, wantType: "image/jpeg"},
		{name: "raw base64", payload: encoded, wantType: "image/gif"},
		{name: "not base64", payload: "data:image/png,raw", wantErr: true},
		{name: "empty data url", payload: "data:image/png;base64,", wantErr: true},
		{name: "no data", payload: "data:image/png;base64", wantErr: true},
		{name: "garbage", payload: "%%%", wantErr: true},
		{name: "empty", payload: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, contentType, err := decodePayload(tt.payload)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrInvalidImage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, raw, data)
			assert.Equal(t, tt.wantType, contentType)
		})
	}
}

func TestObjectName(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   string
		wantOk bool
	}{
		{
			name:   "download url",
			url:    downloadURL(bucket, "images/lessons/winter/abc", "tok"),
			want:   "images/lessons/winter/abc",
			wantOk: true,
		},
		{
			name:   "public url",
			url:    "https://storage.googleapis.com/" + bucket + "/images/rewards/xyz",
			want:   "images/rewards/xyz",
			wantOk: true,
		},
		{name: "other bucket", url: downloadURL("other.appspot.com", "images/a", "tok")},
		{name: "other host", url: "https://example.com/" + bucket + "/images/a"},
		{name: "bucket root", url: "https://storage.googleapis.com/" + bucket + "/"},
		{name: "not a url", url: "::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := objectName(bucket, tt.url)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
