package auth

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"talent-marketplace/internal/domain/mailing"
	"talent-marketplace/internal/domain/users"
)

func link(appURL, path, token string) string {
	return strings.TrimRight(appURL, "/") + path + "?token=" + url.QueryEscape(token)
}

func verificationEmail(apiURL string, u users.User, token string) mailing.Message {
	l := link(apiURL, "/verify", token)
	return mailing.Message{
		To:      u.Email,
		Subject: "Verify your account",
		HTML: fmt.Sprintf(`<p>Hi %s,</p><p>Confirm your email to start using your account:</p><p><a href="%s">%s</a></p>`,
			html.EscapeString(u.Name), l, l),
	}
}

func passwordResetEmail(appURL string, u users.User, token string) mailing.Message {
	l := link(appURL, "/reset-password", token)
	return mailing.Message{
		To:      u.Email,
		Subject: "Reset your password",
		HTML: fmt.Sprintf(`<p>Hi %s,</p><p>Use this link within one hour to choose a new password:</p><p><a href="%s">%s</a></p><p>If you did not ask for this, ignore this email.</p>`,
			html.EscapeString(u.Name), l, l),
	}
}
