package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultEndpoint = "https://api.weixin.qq.com/sns/jscode2session"

// Session is the identity returned by the WeChat code2session exchange.
type Session struct {
	OpenID     string `json:"openid"`
	SessionKey string `json:"session_key"`
	UnionID    string `json:"unionid"`
	ErrCode    int    `json:"errcode"`
	ErrMsg     string `json:"errmsg"`
}

// Client exchanges mini-program login codes for WeChat sessions.
type Client struct {
	appID      string
	appSecret  string
	endpoint   string
	httpClient *http.Client
}

// NewClient builds a client for the given mini-program credentials.
func NewClient(appID, appSecret string) *Client {
	return &Client{
		appID:      appID,
		appSecret:  appSecret,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithEndpoint overrides the code2session URL. Used by tests.
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

// Code2Session exchanges a wx.login code for the user's OpenID.
func (c *Client) Code2Session(ctx context.Context, code string) (*Session, error) {
	query := url.Values{}
	query.Set("appid", c.appID)
	query.Set("secret", c.appSecret)
	query.Set("js_code", code)
	query.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wechat: code2session returned status %d", resp.StatusCode)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	// WeChat reports failures inside a 200 body.
	if session.ErrCode != 0 {
		return nil, fmt.Errorf("wechat: code2session error %d: %s", session.ErrCode, session.ErrMsg)
	}
	if session.OpenID == "" {
		return nil, fmt.Errorf("wechat: code2session returned empty openid")
	}
	return &session, nil
}
