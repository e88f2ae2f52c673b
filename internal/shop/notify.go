// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package shop

import (
	"log/slog"
	"time"
)

// noticeState owns the current notification and its single expiry timer.
type noticeState struct {
	current *Notification
	timer   *time.Timer

	// generation identifies the notification a timer was armed for.
	generation uint64
}

/*
ShowNotification replaces the current notification.

The previous expiry timer is stopped before a new one is armed, so at most
one timer is pending at any time. After [Store.Close] the notification is
still recorded but no timer is armed.
*/
func (store *Store) ShowNotification(message string, kind NotificationKind) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.stopNoticeTimer()

	ttl := store.opts.NotificationTTL
	store.notice.generation++
	store.notice.current = &Notification{
		Message:   message,
		Kind:      kind,
		ExpiresAt: store.opts.Now().Add(ttl),
	}

	if !store.closed {
		generation := store.notice.generation
		store.notice.timer = time.AfterFunc(ttl, func() { store.expireNotice(generation) })
	}

	store.logger.Debug("notification_shown",
		slog.String("kind", string(kind)),
		slog.String("message", message),
	)
}

// Notification returns the current notification, if any.
func (store *Store) Notification() (Notification, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.currentNotice()
}

// DismissNotification clears the current notification early.
func (store *Store) DismissNotification() {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.stopNoticeTimer()
	store.notice.current = nil
}

// currentNotice must be called with store.mu held.
func (store *Store) currentNotice() (Notification, bool) {
	if store.notice.current == nil {
		return Notification{}, false
	}
	return *store.notice.current, true
}

// stopNoticeTimer must be called with store.mu held.
func (store *Store) stopNoticeTimer() {
	if store.notice.timer != nil {
		store.notice.timer.Stop()
		store.notice.timer = nil
	}
}

// expireNotice clears the notification unless a newer one replaced it.
func (store *Store) expireNotice(generation uint64) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.notice.generation != generation {
		return
	}

	store.notice.current = nil
	store.notice.timer = nil
}
