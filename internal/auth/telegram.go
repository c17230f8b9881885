package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strings"
)

// webAppKeySeed is the fixed HMAC key Telegram uses to derive the Mini App
// secret from a bot token.
// See: https://core.telegram.org/bots/webapps#validating-data-received-via-the-mini-app
const webAppKeySeed = "WebAppData"

// ValidateInitData verifies the signed initData payload a Mini App client
// sends on login. Any parse failure, missing hash or missing bot token is
// a plain false.
func ValidateInitData(initDataRaw, botToken string) bool {
	if botToken == "" {
		return false
	}

	params, err := url.ParseQuery(initDataRaw)
	if err != nil {
		return false
	}

	checkHash := params.Get("hash")
	if checkHash == "" {
		return false
	}
	params.Del("hash")

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params.Get(k))
	}
	dataCheckString := strings.Join(parts, "\n")

	seed := hmac.New(sha256.New, []byte(webAppKeySeed))
	seed.Write([]byte(botToken))
	secretKey := seed.Sum(nil)

	mac := hmac.New(sha256.New, secretKey)
	mac.Write([]byte(dataCheckString))
	calculated := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(calculated), []byte(checkHash))
}

// TelegramUser is the identity embedded in initData's user field.
type TelegramUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ParseInitDataUser extracts the identity JSON from initData. Returns nil
// when the field is absent or malformed.
func ParseInitDataUser(initDataRaw string) *TelegramUser {
	params, err := url.ParseQuery(initDataRaw)
	if err != nil {
		return nil
	}

	userJSON := params.Get("user")
	if userJSON == "" {
		return nil
	}

	var user TelegramUser
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil
	}
	if user.ID == 0 {
		return nil
	}
	return &user
}
