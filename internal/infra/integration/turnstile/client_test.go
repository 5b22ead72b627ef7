package turnstile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySendsFormAndReadsSuccess(t *testing.T) {
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")

		assert.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"secret":   r.PostFormValue("secret"),
			"response": r.PostFormValue("response"),
			"remoteip": r.PostFormValue("remoteip"),
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := NewClient("secret-key", server.URL)

	ok, err := client.Verify(context.Background(), "tok-abc", "203.0.113.7")

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "secret-key", gotForm["secret"])
	assert.Equal(t, "tok-abc", gotForm["response"])
	assert.Equal(t, "203.0.113.7", gotForm["remoteip"])
}

func TestVerifyFailureResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer server.Close()

	client := NewClient("secret-key", server.URL)

	ok, err := client.Verify(context.Background(), "bad-token", "203.0.113.7")

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient("secret-key", server.URL)

	ok, err := client.Verify(context.Background(), "tok-abc", "203.0.113.7")

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestEnabled(t *testing.T) {
	assert.True(t, NewClient("secret-key", "").Enabled())
	assert.False(t, NewClient("", "").Enabled())
}
