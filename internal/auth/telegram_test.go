package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"testing"
)

const testBotToken = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

// signInitData builds a valid initData payload the way the Telegram
// client does.
func signInitData(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+values.Get(k))
	}

	seed := hmac.New(sha256.New, []byte("WebAppData"))
	seed.Write([]byte(botToken))
	mac := hmac.New(sha256.New, seed.Sum(nil))
	mac.Write([]byte(strings.Join(parts, "\n")))

	signed := url.Values{}
	for k := range values {
		signed.Set(k, values.Get(k))
	}
	signed.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return signed.Encode()
}

func sampleInitData() url.Values {
	return url.Values{
		"auth_date": {"1700000000"},
		"query_id":  {"AAH9mDMbAAAAAP2YMxtRLRvp"},
		"user":      {`{"id":42,"first_name":"Ivan","last_name":"Petrov","username":"ivan"}`},
	}
}

func TestValidateInitData_Valid(t *testing.T) {
	raw := signInitData(sampleInitData(), testBotToken)

	if !ValidateInitData(raw, testBotToken) {
		t.Error("valid initData should validate")
	}
}

func TestValidateInitData_TamperedHash(t *testing.T) {
	raw := signInitData(sampleInitData(), testBotToken)

	// Flip one hex digit of the hash.
	idx := strings.Index(raw, "hash=") + len("hash=")
	flipped := byte('0')
	if raw[idx] == '0' {
		flipped = '1'
	}
	tampered := raw[:idx] + string(flipped) + raw[idx+1:]

	if ValidateInitData(tampered, testBotToken) {
		t.Error("tampered hash should not validate")
	}
}

func TestValidateInitData_TamperedField(t *testing.T) {
	values := sampleInitData()
	raw := signInitData(values, testBotToken)

	tampered := strings.Replace(raw, "auth_date=1700000000", "auth_date=1700000001", 1)
	if tampered == raw {
		t.Fatal("field replacement did not apply")
	}

	if ValidateInitData(tampered, testBotToken) {
		t.Error("tampered field should not validate")
	}
}

func TestValidateInitData_WrongToken(t *testing.T) {
	raw := signInitData(sampleInitData(), testBotToken)

	if ValidateInitData(raw, "999999:other-token") {
		t.Error("initData signed with another token should not validate")
	}
}

func TestValidateInitData_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		token string
	}{
		{"missing hash", sampleInitData().Encode(), testBotToken},
		{"empty token", signInitData(sampleInitData(), testBotToken), ""},
		{"unparsable payload", "%zz=;&&", testBotToken},
		{"empty payload", "", testBotToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ValidateInitData(tt.raw, tt.token) {
				t.Error("should not validate")
			}
		})
	}
}

func TestParseInitDataUser(t *testing.T) {
	raw := signInitData(sampleInitData(), testBotToken)

	user := ParseInitDataUser(raw)
	if user == nil {
		t.Fatal("expected parsed user")
	}
	if user.ID != 42 {
		t.Errorf("ID = %d, want 42", user.ID)
	}
	if user.Username != "ivan" || user.FirstName != "Ivan" || user.LastName != "Petrov" {
		t.Errorf("unexpected user fields: %+v", user)
	}
}

func TestParseInitDataUser_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing user field", "auth_date=1"},
		{"malformed json", "user=" + url.QueryEscape(`{"id":`)},
		{"missing id", "user=" + url.QueryEscape(`{"username":"x"}`)},
		{"unparsable payload", "%zz=;&&"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if user := ParseInitDataUser(tt.raw); user != nil {
				t.Errorf("expected nil, got %+v", user)
			}
		})
	}
}
