package wechat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode2Session(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "wx-app", q.Get("appid"))
		assert.Equal(t, "wx-secret", q.Get("secret"))
		assert.Equal(t, "the-code", q.Get("js_code"))
		assert.Equal(t, "authorization_code", q.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"openid":"o6_bmjrPTlm6_2sgVt7hMZOPfL2M","session_key":"key","unionid":"u1"}`))
	}))
	defer server.Close()

	client := NewClient("wx-app", "wx-secret").WithEndpoint(server.URL)
	session, err := client.Code2Session(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "o6_bmjrPTlm6_2sgVt7hMZOPfL2M", session.OpenID)
	assert.Equal(t, "key", session.SessionKey)
}

func TestCode2SessionErrorInBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// WeChat reports failures with a 200 status and an errcode body.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errcode":40029,"errmsg":"invalid code"}`))
	}))
	defer server.Close()

	client := NewClient("wx-app", "wx-secret").WithEndpoint(server.URL)
	_, err := client.Code2Session(context.Background(), "bad-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "40029")
}

func TestCode2SessionBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient("wx-app", "wx-secret").WithEndpoint(server.URL)
	_, err := client.Code2Session(context.Background(), "any")
	assert.Error(t, err)
}

func TestCode2SessionEmptyOpenID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient("wx-app", "wx-secret").WithEndpoint(server.URL)
	_, err := client.Code2Session(context.Background(), "any")
	assert.Error(t, err)
}
