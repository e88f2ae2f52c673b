// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package shop

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rayaw/storefront/internal/platform/apperr"
	"github.com/rayaw/storefront/internal/platform/constants"
	"github.com/rayaw/storefront/internal/platform/sec"
	"github.com/rayaw/storefront/internal/remote"
	"github.com/rayaw/storefront/pkg/pointer"
)

// # Session Lookups

// Session returns a copy of the current session, or nil when anonymous.
func (store *Store) Session() *Session {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.session == nil {
		return nil
	}

	session := *store.session
	return &session
}

// IsAuthenticated reports whether a session is present.
func (store *Store) IsAuthenticated() bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.session != nil
}

// # Authentication

/*
Login exchanges credentials for a session.

Email and password are trimmed. A rejected credential pair (401) shows
"Invalid email or password"; any other failure shows a generic connection
message. Failure leaves the current state untouched.

Returns:
  - bool: true when a session was established
*/
func (store *Store) Login(ctx context.Context, email, password string) bool {
	result, err := store.remote.Login(ctx, strings.TrimSpace(email), strings.TrimSpace(password))
	if err != nil {
		store.logger.Warn("login_failed", slog.Any("error", err))

		if apperr.HasCode(err, apperr.CodeUnauthorized) {
			store.ShowNotification(constants.MsgInvalidCredentials, KindError)
		} else {
			store.ShowNotification(constants.MsgLoginFailed, KindError)
		}
		return false
	}

	session := store.establish(result)
	store.ShowNotification(fmt.Sprintf(constants.MsgWelcomeBack, session.FirstName), KindSuccess)
	return true
}

/*
Register creates an account and signs it in.

A duplicate-account rejection shows "Phone number or email already taken";
any other failure shows a generic signup message.
*/
func (store *Store) Register(ctx context.Context, input RegisterInput) bool {
	result, err := store.remote.Signup(ctx, remote.SignupRequest{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    input.Password,
	})
	if err != nil {
		store.logger.Warn("register_failed", slog.Any("error", err))

		if isDuplicateAccount(err) {
			store.ShowNotification(constants.MsgDuplicateAccount, KindError)
		} else {
			store.ShowNotification(constants.MsgSignupFailed, KindError)
		}
		return false
	}

	store.establish(result)
	store.ShowNotification(constants.MsgSignupSuccess, KindSuccess)
	return true
}

// Logout clears the session from memory and storage. Safe without a session.
func (store *Store) Logout() {
	store.mu.Lock()
	store.session = nil
	seq := store.nextSeq()
	store.mu.Unlock()

	store.persist(seq,
		write{key: constants.KeyUser},
		write{key: constants.KeyAccessToken},
		write{key: constants.KeyRefreshToken},
	)

	store.logger.Info("session_cleared")
	store.ShowNotification(constants.MsgLoggedOut, KindSuccess)
}

/*
UpdateProfile shallow-merges the non-nil fields of update into the session.

Without a session it does nothing and returns false; no session is created.
An update that blanks the first name falls back to the derived display name.
*/
func (store *Store) UpdateProfile(update ProfileUpdate) bool {
	store.mu.Lock()

	if store.session == nil {
		store.mu.Unlock()
		store.logger.Debug("profile_update_skipped", slog.String("reason", "anonymous"))
		return false
	}

	merged := *store.session
	pointer.Assign(&merged.FirstName, trimmed(update.FirstName))
	pointer.Assign(&merged.LastName, trimmed(update.LastName))
	pointer.Assign(&merged.Email, trimmed(update.Email))
	pointer.Assign(&merged.Phone, trimmed(update.Phone))

	if merged.FirstName == "" {
		merged.FirstName = displayName(remote.Identity{LastName: merged.LastName, Email: merged.Email})
	}

	store.session = &merged
	seq := store.nextSeq()
	staged := store.stage(constants.KeyUser, merged)
	store.mu.Unlock()

	store.persist(seq, staged)
	store.ShowNotification(constants.MsgProfileUpdated, KindSuccess)
	return true
}

// # Internal Helpers

// establish writes the session and its tokens to memory and storage.
func (store *Store) establish(result *remote.AuthResult) Session {
	session := Session{
		ID:        result.Identity.ID,
		FirstName: displayName(result.Identity),
		LastName:  result.Identity.LastName,
		Email:     result.Identity.Email,
		Phone:     result.Identity.Phone,
	}

	store.mu.Lock()
	store.session = &session
	seq := store.nextSeq()
	writes := []write{
		store.stage(constants.KeyUser, session),
		{key: constants.KeyAccessToken, value: []byte(result.AccessToken)},
		{key: constants.KeyRefreshToken},
	}
	if result.RefreshToken != "" {
		writes[2].value = []byte(result.RefreshToken)
	}
	store.mu.Unlock()

	store.persist(seq, writes...)

	store.logger.Info("session_established",
		slog.String("user_id", session.ID),
		slog.String("shape", result.Shape.String()),
	)
	return session
}

// loadSession restores the persisted session, clearing storage when it is
// unusable.
func (store *Store) loadSession(ctx context.Context) *Session {
	rawUser := store.readBlob(ctx, constants.KeyUser)
	token := store.readBlob(ctx, constants.KeyAccessToken)

	if rawUser == nil || token == nil {
		return nil
	}

	var session Session
	if err := json.Unmarshal(rawUser, &session); err != nil {
		store.logger.Warn("session_restore_failed", slog.Any("error", err))
		store.clearStoredSession(ctx)
		return nil
	}

	info := sec.InspectToken(string(token))
	if info.Expired(store.opts.Now()) && store.readBlob(ctx, constants.KeyRefreshToken) == nil {
		store.logger.Info("session_expired", slog.Time("expired_at", info.ExpiresAt))
		store.clearStoredSession(ctx)
		return nil
	}

	if session.FirstName == "" {
		session.FirstName = displayName(remote.Identity{LastName: session.LastName, Email: session.Email})
	}

	return &session
}

func (store *Store) clearStoredSession(ctx context.Context) {
	for _, key := range []string{constants.KeyUser, constants.KeyAccessToken, constants.KeyRefreshToken} {
		if err := store.storage.Delete(ctx, key); err != nil {
			store.logger.Warn("state_delete_failed", slog.String("key", key), slog.Any("error", err))
		}
	}
}

/*
displayName derives the name shown in greetings.

Fallback chain: first_name, firstName, name, last_name, the local part of
the email, then "Customer".
*/
func displayName(identity remote.Identity) string {
	local, _, _ := strings.Cut(identity.Email, "@")

	candidates := []string{
		identity.FirstName,
		identity.FirstNameAlt,
		identity.Name,
		identity.LastName,
		local,
	}

	for _, candidate := range candidates {
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			return candidate
		}
	}

	return constants.FallbackDisplayName
}

// isDuplicateAccount reports whether a signup failure names a duplicate.
// The backend exposes no structured code for it; only its free text does.
func isDuplicateAccount(err error) bool {
	ae := apperr.As(err)
	if ae == nil {
		return false
	}

	return strings.Contains(strings.ToLower(ae.Raw), constants.DuplicateMarker)
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	return pointer.To(strings.TrimSpace(*value))
}
