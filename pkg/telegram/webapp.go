package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultInitDataMaxAge - сколько живут initData, выданные мини-приложению.
const DefaultInitDataMaxAge = 24 * time.Hour

var ErrInitDataInvalid = errors.New("initData Telegram не прошли проверку")

// WebAppAuth проверяет initData мини-приложения, подписанные токеном бота.
// Так сайт узнаёт chat id клиента без доверия к телу запроса.
type WebAppAuth struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

func NewWebAppAuth(botToken string, maxAge time.Duration) *WebAppAuth {
	return &WebAppAuth{secret: webAppSecret(botToken), maxAge: maxAge, now: time.Now}
}

func webAppSecret(botToken string) []byte {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))
	return mac.Sum(nil)
}

// UserID возвращает id пользователя Telegram из подписанных initData.
func (a *WebAppAuth) UserID(initData string) (int64, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInitDataInvalid, err)
	}
	hash := values.Get("hash")
	if hash == "" {
		return 0, fmt.Errorf("%w: нет подписи", ErrInitDataInvalid)
	}

	expected := signInitData(a.secret, values)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(hash))) {
		return 0, fmt.Errorf("%w: неверная подпись", ErrInitDataInvalid)
	}

	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: нет auth_date", ErrInitDataInvalid)
	}
	if a.maxAge > 0 && a.now().Sub(time.Unix(authDate, 0)) > a.maxAge {
		return 0, fmt.Errorf("%w: срок действия истёк", ErrInitDataInvalid)
	}

	var user struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil || user.ID == 0 {
		return 0, fmt.Errorf("%w: нет пользователя", ErrInitDataInvalid)
	}
	return user.ID, nil
}

// signInitData - hex(HMAC-SHA256) от отсортированных пар key=value без hash, через \n.
func signInitData(secret []byte, values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strings.Join(pairs, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}
