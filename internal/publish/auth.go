package publish

import (
	"strings"

	"github.com/go-rod/rod/lib/proto"
)

// cookieDomain covers note.com and its subdomains.
const cookieDomain = ".note.com"

// AuthMethod names how a session is established.
type AuthMethod string

const (
	AuthCookie      AuthMethod = "cookie"
	AuthCredentials AuthMethod = "credentials"
)

// AuthConfig holds either a browser cookie string or login credentials.
// A non-empty Cookie takes precedence.
type AuthConfig struct {
	Cookie   string
	Email    string
	Password string
}

// Method reports which authentication path Login will take.
func (a AuthConfig) Method() AuthMethod {
	if strings.TrimSpace(a.Cookie) != "" {
		return AuthCookie
	}
	return AuthCredentials
}

// Validate returns ErrNoCredentials when neither a cookie nor a complete
// email and password pair is set.
func (a AuthConfig) Validate() error {
	if a.Method() == AuthCookie {
		return nil
	}
	if a.Email == "" || a.Password == "" {
		return ErrNoCredentials
	}
	return nil
}

// String hides secrets so the config can be logged.
func (a AuthConfig) String() string {
	if a.Method() == AuthCookie {
		return "cookie"
	}
	return "credentials(" + a.Email + ")"
}

// ParseCookies turns a "name=value; name2=value2" header string into cookie
// parameters for note.com. Values may themselves contain "=". Empty pairs
// are skipped.
func ParseCookies(header string) []*proto.NetworkCookieParam {
	var cookies []*proto.NetworkCookieParam
	for _, pair := range strings.Split(header, ";") {
		name, value, _ := strings.Cut(strings.TrimSpace(pair), "=")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cookies = append(cookies, &proto.NetworkCookieParam{
			Name:     name,
			Value:    strings.TrimSpace(value),
			Domain:   cookieDomain,
			Path:     "/",
			Secure:   true,
			HTTPOnly: false,
			SameSite: proto.NetworkCookieSameSiteNone,
		})
	}
	return cookies
}
