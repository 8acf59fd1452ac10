package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "outreach"

// GetSMTPPassword looks up the SMTP password: keychain first, then the
// supplied env fallback (SMTP_PASSWORD).
func GetSMTPPassword(account, envFallback string) (string, error) {
	if strings.TrimSpace(account) != "" {
		pw, err := keyring.Get(KeyringService, account)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}
	if envFallback != "" {
		return envFallback, nil
	}
	return "", errors.New("SMTP password not found (set it in the keychain or via SMTP_PASSWORD)")
}

func SetSMTPPassword(account, password string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, account, password)
}

func DeleteSMTPPassword(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

// SMTPKeyringAccount scopes the stored password to a username@host pair.
func SMTPKeyringAccount(username, host string) string {
	return fmt.Sprintf("outreach:smtp:%s@%s", username, host)
}
