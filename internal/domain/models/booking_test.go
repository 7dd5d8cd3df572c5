package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateFormats(t *testing.T) {
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local)
	for _, in := range []string{"2024-03-09", "2024-03-09 08:30:00", "2024-03-09T08:30:00"} {
		d, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, d.Time.Equal(want), in)
	}

	d, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("09/03/2024")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	var v struct {
		D Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-01-05"}`), &v))
	assert.Equal(t, "2024-01-05", v.D.String())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-01-05"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"d":null}`), &v))
	out, _ = json.Marshal(v)
	assert.JSONEq(t, `{"d":null}`, string(out))
}

func TestAttachmentsShapes(t *testing.T) {
	cases := []struct {
		raw  string
		want Attachments
	}{
		{`null`, nil},
		{`""`, nil},
		{`"https://x/a.jpg"`, Attachments{"https://x/a.jpg"}},
		{`["https://x/a.jpg"," ",null,"https://x/b.png"]`, Attachments{"https://x/a.jpg", "https://x/b.png"}},
		{`[]`, nil},
	}
	for _, tc := range cases {
		var b Booking
		require.NoError(t, json.Unmarshal([]byte(`{"upload_bukti":`+tc.raw+`}`), &b), tc.raw)
		assert.Equal(t, tc.want, b.Attachments, tc.raw)
	}

	var b Booking
	assert.Error(t, json.Unmarshal([]byte(`{"upload_bukti":5}`), &b))
}
