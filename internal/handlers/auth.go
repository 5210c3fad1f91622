// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"irportal/internal/middleware"
	"irportal/internal/session"
	"irportal/internal/store"
)

// totpIssuer is shown in authenticator apps next to the account email.
const totpIssuer = "IR Portal"

// Auth groups the authentication endpoints for the admin API. The flow is
// two-step: password login creates a session with TwoFADone=false, then a
// TOTP code promotes it. Data routes require the promoted session.
type Auth struct {
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates the Auth handler group.
func NewAuth(sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{sessions: sessions, userStore: userStore}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/admin/login.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := validateStruct(req); len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	user, err := a.userStore.FindByEmail(r.Context(), req.Email)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	// Same response for unknown email and wrong password.
	if user == nil || !a.userStore.CheckPassword(user, req.Password) {
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		TwoFADone:   false,
	}); err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"email":          user.Email,
		"displayName":    user.DisplayName,
		"role":           user.Role,
		"twoFactorSetup": !user.Needs2FASetup(),
	})
}

// Logout handles POST /api/admin/logout.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// TwoFASetup handles GET /api/admin/2fa/setup: generates a fresh TOTP
// secret, stores it unconfirmed and returns the provisioning QR code.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		writeInternalError(w, err)
		return
	}

	if err := a.userStore.SetTOTPSecret(r.Context(), sess.UserID, key.Secret()); err != nil {
		writeInternalError(w, err)
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"secret": key.Secret(),
		"qrPng":  base64.StdEncoding.EncodeToString(qrPNG),
	})
}

type twoFAVerifyRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// TwoFAVerify handles POST /api/admin/2fa/verify: checks the TOTP code and
// marks the session as fully authenticated. The first successful
// verification also confirms a pending setup.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req twoFAVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := validateStruct(req); len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	user, err := a.userStore.FindByID(r.Context(), sess.UserID)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if user == nil || user.TOTPSecret == nil {
		writeError(w, http.StatusConflict, "TWO_FA_NOT_SET_UP", "two-factor authentication has not been set up")
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		writeError(w, http.StatusUnauthorized, "INVALID_CODE", "invalid verification code")
		return
	}

	if !user.TOTPEnabled {
		if err := a.userStore.EnableTOTP(r.Context(), user.ID); err != nil {
			writeInternalError(w, err)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"email":       user.Email,
		"displayName": user.DisplayName,
		"role":        user.Role,
	})
}
